package entity

// PlayerStats summarises registrations for dashboards.
type PlayerStats struct {
	TotalPlayers int64        `json:"totalPlayers"`
	ByRole       []GroupCount `json:"byRole"`
	ByState      []GroupCount `json:"byState"`
	ByDay        []GroupCount `json:"byDay"`
}

// GroupCount is a single bucket of an aggregation.
type GroupCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int64  `bson:"count" json:"count"`
}

// PlayerFilter narrows player listings.
type PlayerFilter struct {
	Search string
	Role   string
	State  string
	Page   int
	Limit  int
}
