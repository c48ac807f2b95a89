// README: Caller identity threaded explicitly through each request.
package types

// Session is the verified caller of a request. Token is the raw bearer
// credential, forwarded only to collaborators that act on the user's behalf.
type Session struct {
	UID   string
	Token string
}

func (s Session) Valid() bool {
	return s.UID != ""
}
