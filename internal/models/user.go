package models

import "github.com/thand-io/directory/internal/common"

// Form field names for a user. The order here is the order fields are
// rendered and validated in.
const (
	UserFieldUsername  = "username"
	UserFieldEmail     = "email"
	UserFieldFirstName = "firstName"
	UserFieldLastName  = "lastName"
)

var UserFieldNames = []string{
	UserFieldUsername,
	UserFieldEmail,
	UserFieldFirstName,
	UserFieldLastName,
}

type User struct {
	Username  string `json:"username" yaml:"username"`
	Email     string `json:"email" yaml:"email"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
}

func (u User) Fields() []common.Field {
	return []common.Field{
		{Name: UserFieldUsername, Value: u.Username},
		{Name: UserFieldEmail, Value: u.Email},
		{Name: UserFieldFirstName, Value: u.FirstName},
		{Name: UserFieldLastName, Value: u.LastName},
	}
}

// UserFromFields builds a user from raw form values. Values are stored
// exactly as entered.
func UserFromFields(fields []common.Field) User {
	return User{
		Username:  common.FieldValue(fields, UserFieldUsername),
		Email:     common.FieldValue(fields, UserFieldEmail),
		FirstName: common.FieldValue(fields, UserFieldFirstName),
		LastName:  common.FieldValue(fields, UserFieldLastName),
	}
}

// Usernames projects a user list to its usernames, keeping order.
func Usernames(users []User) []string {
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Username)
	}
	return names
}
