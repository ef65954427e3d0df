package user

import "fmt"

func givenUser(userID int64) User {
	return User{
		ID:       userID,
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Phone:    "1-770-736-8031 x56442",
		Website:  "hildegard.org",
	}
}

func givenPosts(userID int64) []Post {
	posts := make([]Post, 0, 3)
	for i := int64(1); i <= 3; i++ {
		posts = append(posts, Post{
			UserID: userID,
			ID:     userID*10 + i,
			Title:  fmt.Sprintf("post %d of user %d", i, userID),
			Body:   "quia et suscipit suscipit recusandae consequuntur expedita et cum",
		})
	}
	return posts
}

func givenUserDetails(userID int64) *UserDetails {
	return &UserDetails{
		User:  givenUser(userID),
		Posts: givenPosts(userID),
	}
}
