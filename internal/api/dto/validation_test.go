package dto

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	cases := map[string]string{
		"Secr3t!2":  "",
		"Sh0rt!":    "password must be at least 8 characters long",
		"secr3t!23": "password must contain at least one uppercase letter",
		"SECR3T!23": "password must contain at least one lowercase letter",
		"Secret!ab": "password must contain at least one digit",
		"Secr3tab2": "password must contain at least one special character",
	}
	for password, want := range cases {
		t.Run(password, func(t *testing.T) {
			assert.Equal(t, want, validatePassword(password))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.Empty(t, validateEmail("a@x.com"))
	assert.NotEmpty(t, validateEmail(""))
	assert.NotEmpty(t, validateEmail("not-an-email"))
	assert.NotEmpty(t, validateEmail("Alice <a@x.com>"))
	assert.NotEmpty(t, validateEmail(" a@x.com"))
}

func TestValidateName(t *testing.T) {
	assert.Empty(t, validateName(strings.Repeat("é", 255)))
	assert.NotEmpty(t, validateName(strings.Repeat("a", 256)))
}

func TestCreateAdminRequest_Validate(t *testing.T) {
	valid := CreateAdminRequest{Email: "a@x.com", Name: "asdf", Password: "Secr3t!2"}
	assert.Nil(t, valid.Validate())

	problems := CreateAdminRequest{Email: "nope", Name: strings.Repeat("n", 300), Password: "weak"}.Validate()
	assert.Len(t, problems, 3)
	assert.Contains(t, problems, "email")
	assert.Contains(t, problems, "name")
	assert.Contains(t, problems, "password")
}

func TestUpdateAdminRequest_Validate(t *testing.T) {
	assert.Nil(t, UpdateAdminRequest{NewName: "renamed"}.Validate())
	assert.Contains(t, UpdateAdminRequest{NewName: strings.Repeat("n", 256)}.Validate(), "new_name")
}

func TestCreateTableSessionRequest_Validate(t *testing.T) {
	assert.Nil(t, CreateTableSessionRequest{TableID: uuid.New(), OrderID: uuid.New()}.Validate())
	problems := CreateTableSessionRequest{}.Validate()
	assert.Contains(t, problems, "table_id")
	assert.Contains(t, problems, "order_id")
}

func TestAdminLoginRequest_Credentials(t *testing.T) {
	creds := AdminLoginRequest{Email: "a@x.com", Password: "pw"}.Credentials()
	assert.Equal(t, "a@x.com", creds.Email)
	assert.Equal(t, "pw", creds.Password)
	assert.Empty(t, creds.Strategy)
}
