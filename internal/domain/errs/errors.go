package errs

import "errors"

var (
	ErrUserType           = errors.New("wrong user type")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCameraAlreadyExists = errors.New("camera already exists")
	ErrCameraNotFound      = errors.New("camera not found")
	ErrInvalidStatus       = errors.New("invalid camera status")
	ErrAmbiguousSelector   = errors.New("camera id and rtsp url are mutually exclusive")

	ErrWriteToDB = errors.New("failed to write to database")
)
