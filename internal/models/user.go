package models

type User struct {
	PK       string `bson:"pk" json:"-"`
	SK       string `bson:"sk" json:"-"`
	ID       string `bson:"-" json:"userId"`
	UserName string `bson:"userName" json:"userName"`
	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Role     string `bson:"role" json:"role"`
}
