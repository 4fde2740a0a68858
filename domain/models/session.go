package models

import "strings"

// Session identifies the caller of a service operation.
// It is built from a verified token at the edge and passed explicitly into every call.
type Session struct {
	UserID    string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// IsAuthenticated ตรวจสอบว่ามี user id ที่ใช้ได้
func (s *Session) IsAuthenticated() bool {
	return s != nil && strings.TrimSpace(s.UserID) != ""
}
