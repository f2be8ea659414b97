package twitter

type User struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Handle   string `mapstructure:"handle"`
	PhotoURL string `mapstructure:"photo_url"`
}
