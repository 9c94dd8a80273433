package models

// Staff is a read-only reference entity owned by the staff directory.
// The scheduling core never mutates it.
type Staff struct {
	ID        string   `json:"id" bson:"_id,omitempty"`
	Name      string   `json:"name" bson:"name"`
	Initials  string   `json:"initials" bson:"initials"`
	Avatar    string   `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Roles     []string `json:"roles" bson:"roles"`
	TimeModel `bson:",inline"`
}
