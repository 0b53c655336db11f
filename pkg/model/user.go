package model

import "time"

type User struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Email       string    `json:"email" bson:"email"`
	Password    string    `json:"-" bson:"password"`
	FirstName   string    `json:"firstName" bson:"firstName"`
	LastName    string    `json:"lastName" bson:"lastName"`
	DisplayName string    `json:"displayName" bson:"displayName"`
	IsLoggedIn  bool      `json:"isLoggedIn" bson:"isLoggedIn"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type LoginResponse struct {
	IsLogin bool   `json:"isLogin"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

type RegisterConflictResponse struct {
	IsExist bool `json:"isExist"`
}

type LogoutResponse struct {
	IsLogout bool `json:"isLogout"`
}
