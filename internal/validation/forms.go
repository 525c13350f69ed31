// Package validation binds untrusted form input to typed creation and
// edit intents. Author and parent-post identity are never part of these
// inputs; handlers bind them from the authenticated actor and the URL.
package validation

import (
	"bytes"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// FieldErrors maps a form field name to its validation messages.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// HasErrors reports whether any field failed validation.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// PostInput is the untrusted payload for creating or editing a post.
type PostInput struct {
	Text    string `json:"text" form:"text"`
	GroupID *uint  `json:"group_id" form:"group_id"`
	// Image holds the raw bytes of an optional uploaded attachment.
	Image     []byte `json:"-" form:"-"`
	ImageName string `json:"-" form:"-"`
}

// Validate checks field constraints and returns per-field errors.
func (in *PostInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Text) == "" {
		errs.Add("text", "This field is required.")
	}
	if len(in.Image) > 0 {
		if _, _, err := image.Decode(bytes.NewReader(in.Image)); err != nil {
			errs.Add("image", "Upload a valid image.")
		}
	}
	return errs
}

// CommentInput is the untrusted payload for adding a comment.
type CommentInput struct {
	Text string `json:"text" form:"text"`
}

// Validate checks field constraints and returns per-field errors.
func (in *CommentInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Text) == "" {
		errs.Add("text", "This field is required.")
	}
	return errs
}
