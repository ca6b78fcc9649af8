package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	FirstName        string
	LastName         string
	Bio              string
	Role             string
	IsSuperuser      string
	ConfirmationCode string
	CreatedAt        string
	UpdatedAt        string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	FirstName:        "firstname",
	LastName:         "lastname",
	Bio:              "bio",
	Role:             "role",
	IsSuperuser:      "issuperuser",
	ConfirmationCode: "confirmationcode",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}
