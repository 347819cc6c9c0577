package frame

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// topicPattern constrains topics to dotted lowercase segments, e.g.
// "yak.create" or "note.edit".
var topicPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z][a-z0-9]*)*$`)

// AppendRequest describes a frame to append to the log.
// Content is optional; when present the log stores it in the CAS and the
// frame records only its hash.
type AppendRequest struct {
	Topic   string
	Content string
	Meta    *Meta
}

// Validate checks the request before anything touches the log.
func (r AppendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Topic,
			validation.Required,
			validation.Length(1, 128),
			validation.Match(topicPattern),
		),
	)
}
