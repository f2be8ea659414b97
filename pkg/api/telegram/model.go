package telegram

type User struct {
	ID     string
	Status string
}
