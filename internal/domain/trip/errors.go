package trip

import "errors"

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyMember = errors.New("user is already a trip member")
	ErrNotTripMember = errors.New("user is not a trip member")
)
