package organizations

import "time"

type Account struct {
	ID       string
	Name     string
	Email    string
	ARN      string
	Status   string
	JoinedAt time.Time
}
