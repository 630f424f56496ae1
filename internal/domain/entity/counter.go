package entity

// PlayerSequenceKey identifies the counter backing player sequence numbers.
const PlayerSequenceKey = "player_sequence"

// Counter is a named monotonically increasing value.
type Counter struct {
	Key   string `bson:"_id" json:"key"`
	Value int64  `bson:"value" json:"value"`
}
