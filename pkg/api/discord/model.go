package discord

type Guild struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

type User struct {
	ID       string `mapstructure:"id"`
	Username string `mapstructure:"username"`
}
