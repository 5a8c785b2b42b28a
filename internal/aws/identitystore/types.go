package identitystore

type User struct {
	UserID      string
	UserName    string
	DisplayName string
	GivenName   string
	FamilyName  string
	Email       string
	ExternalIDs []ExternalID
}

type ExternalID struct {
	Issuer string
	ID     string
}

type Group struct {
	GroupID     string
	DisplayName string
	Description string
}

type GroupMembership struct {
	MembershipID string
	GroupID      string
	UserID       string
}
