package model

import "errors"

var (
	// Session related errors
	ErrNoSession = errors.New("not logged in")

	// Media related errors
	ErrNotAnImage    = errors.New("file is not a decodable image")
	ErrImageTooLarge = errors.New("image exceeds maximum upload size")
)
