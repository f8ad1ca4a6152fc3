package user

// ErrValidation is a business-rule violation reported back to the caller verbatim.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// ErrUnknownEmail is returned by ForgotPassword when no account uses the address.
type ErrUnknownEmail string

func (e ErrUnknownEmail) Error() string { return string(e) }
