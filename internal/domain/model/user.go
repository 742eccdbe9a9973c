package model

type User struct {
	Username string `json:"username"`
	Password string `json:"-"` // Not exposed; plaintext or bcrypt depending on config
	Read     bool   `json:"read"`  // Permission to read all questions
	Write    bool   `json:"write"` // Permission to write new questions
}
