package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var fieldMessages = map[string]string{
	"FullName": "Full Name is required",
	"Email":    "Email is required",
	"Password": "Password is required",
	"Title":    "Title is required",
	"Content":  "Content is required",
	"IsPinned": "isPinned is required",
}

// validationMessage maps the first failed field to the message the
// frontend displays for it.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].Field()]; ok {
			return msg
		}
		return verrs[0].Field() + " is invalid"
	}
	return "Invalid request payload"
}
