package user

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Post struct {
	UserID int64  `json:"userId"`
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// UserDetails combines a user with the posts that user wrote.
type UserDetails struct {
	User  User   `json:"user"`
	Posts []Post `json:"posts"`
}
