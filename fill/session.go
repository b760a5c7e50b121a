package fill

// Memory is the cross-field state carried within one fill pass. Slots start
// empty and are overwritten each time a non-confirmation field of the
// corresponding category is filled. Confirmation fields copy from these
// slots without clearing them — including the empty string when nothing of
// that category was filled yet.
type Memory struct {
	Value     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}
