/*
Package validate checks form input before it is sent to the backend.

Every failure is a *Error naming the field and unwrapping to ErrInvalid.
Poll and Survey also normalize their argument in place (trimmed texts,
blank poll options dropped, text questions stripped of options).
*/
package validate
