package responses

type Staff struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Initials  string   `json:"initials"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Roles     []string `json:"roles"`
}
