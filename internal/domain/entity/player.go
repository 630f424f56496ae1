package entity

import (
	"math"
	"strings"
	"time"
)

// Player represents a registered cricket player
type Player struct {
	ID             string `bson:"_id,omitempty" json:"id"`
	PlayerID       string `bson:"player_id" json:"playerId"`
	UserID         string `bson:"user_id" json:"userId"`
	SequenceNumber int64  `bson:"sequence_number" json:"sequenceNumber"`

	FirstName   string    `bson:"first_name" json:"firstName"`
	MiddleName  *string   `bson:"middle_name,omitempty" json:"middleName,omitempty"`
	LastName    string    `bson:"last_name" json:"lastName"`
	DateOfBirth time.Time `bson:"date_of_birth" json:"dateOfBirth"`
	Gender      Gender    `bson:"gender" json:"gender"`

	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`

	StreetAddress string `bson:"street_address" json:"streetAddress"`
	City          string `bson:"city" json:"city"`
	State         string `bson:"state" json:"state"`
	PostalCode    string `bson:"postal_code" json:"postalCode"`
	Country       string `bson:"country" json:"country"`

	PrimarySport           string             `bson:"primary_sport" json:"primarySport"`
	Role                   PlayerRole         `bson:"role" json:"role"`
	BattingOrderPreference BattingOrder       `bson:"batting_order_preference" json:"battingOrderPreference"`
	BowlingStyle           BowlingStyle       `bson:"bowling_style" json:"bowlingStyle"`
	BattingStyle           BattingStyle       `bson:"batting_style" json:"battingStyle"`
	BowlingArm             *BowlingArm        `bson:"bowling_arm,omitempty" json:"bowlingArm,omitempty"`
	Username               string             `bson:"username" json:"username"`
	PasswordHash           string             `bson:"password_hash" json:"-"`
	RegistrationDate       time.Time          `bson:"registration_date" json:"registrationDate"`
	RegistrationMetadata   RegistrationSource `bson:"registration_metadata" json:"-"`

	Status          PlayerStatus `bson:"status" json:"status"`
	LastLogin       *time.Time   `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	LoginCount      int          `bson:"login_count" json:"loginCount"`
	EmailVerified   bool         `bson:"email_verified" json:"emailVerified"`
	PhoneVerified   bool         `bson:"phone_verified" json:"phoneVerified"`
	ProfileVerified bool         `bson:"profile_verified" json:"profileVerified"`
}

// RegistrationSource captures where a registration came from.
// ClientRandom is an unverified client nonce kept for debugging only.
type RegistrationSource struct {
	IPAddress       string     `bson:"ip_address" json:"ipAddress"`
	UserAgent       string     `bson:"user_agent" json:"userAgent"`
	ClientTimestamp *time.Time `bson:"client_timestamp,omitempty" json:"clientTimestamp,omitempty"`
	ClientRandom    string     `bson:"client_random,omitempty" json:"clientRandom,omitempty"`
}

// FullName joins the non-empty name parts with single spaces.
func (p *Player) FullName() string {
	parts := []string{p.FirstName}
	if p.MiddleName != nil && *p.MiddleName != "" {
		parts = append(parts, *p.MiddleName)
	}
	parts = append(parts, p.LastName)
	return strings.Join(parts, " ")
}

// Age returns the player's age in whole years at the given instant.
func (p *Player) Age(now time.Time) int {
	return AgeAt(p.DateOfBirth, now)
}

// AgeAt computes floor((now - dob) / 365.25 days).
func AgeAt(dob, now time.Time) int {
	const year = 365.25 * 24 * float64(time.Hour)
	return int(math.Floor(float64(now.Sub(dob)) / year))
}

// DateOfBirthLayout is the wire format for dates of birth.
const DateOfBirthLayout = "2006-01-02"

// ParseDateOfBirth accepts YYYY-MM-DD or a full RFC 3339 timestamp. The
// calendar date is kept as written, at midnight UTC, whatever the offset.
func ParseDateOfBirth(s string) (time.Time, error) {
	if t, err := time.Parse(DateOfBirthLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

const (
	MinPlayerAge = 10
	MaxPlayerAge = 65

	DefaultCountry      = "India"
	DefaultPrimarySport = "Cricket"
)

// Gender of a player
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PlayerRole is the player's main playing role
type PlayerRole string

const (
	RoleBatsman       PlayerRole = "Batsman"
	RoleBowler        PlayerRole = "Bowler"
	RoleAllRounder    PlayerRole = "All Rounder"
	RoleKeeperBatsman PlayerRole = "Keeper Batsman"
)

type BattingOrder string

const (
	BattingOrderOpening BattingOrder = "Opening"
	BattingOrderTop     BattingOrder = "Top Order"
	BattingOrderMiddle  BattingOrder = "Middle Order"
	BattingOrderLower   BattingOrder = "Lower Order"
)

type BowlingStyle string

const (
	BowlingStyleFast   BowlingStyle = "Fast"
	BowlingStyleMedium BowlingStyle = "Medium"
	BowlingStyleSpin   BowlingStyle = "Spin"
	BowlingStyleNone   BowlingStyle = "None"
)

type BattingStyle string

const (
	BattingStyleRight BattingStyle = "Right Handed Bat"
	BattingStyleLeft  BattingStyle = "Left Handed Bat"
)

type BowlingArm string

const (
	BowlingArmRightFast BowlingArm = "Right Arm Fast"
	BowlingArmRightSpin BowlingArm = "Right Arm Spin"
	BowlingArmLeftFast  BowlingArm = "Left Arm Fast"
	BowlingArmLeftSpin  BowlingArm = "Left Arm Spin"
)

// PlayerStatus is the account state of a player
type PlayerStatus string

const (
	StatusActive    PlayerStatus = "Active"
	StatusInactive  PlayerStatus = "Inactive"
	StatusSuspended PlayerStatus = "Suspended"
	StatusPending   PlayerStatus = "Pending"
)

// Allowed values per enumerated field, in display order.
var (
	Genders       = []Gender{GenderMale, GenderFemale, GenderOther}
	PlayerRoles   = []PlayerRole{RoleBatsman, RoleBowler, RoleAllRounder, RoleKeeperBatsman}
	BattingOrders = []BattingOrder{BattingOrderOpening, BattingOrderTop, BattingOrderMiddle, BattingOrderLower}
	BowlingStyles = []BowlingStyle{BowlingStyleFast, BowlingStyleMedium, BowlingStyleSpin, BowlingStyleNone}
	BattingStyles = []BattingStyle{BattingStyleRight, BattingStyleLeft}
	BowlingArms   = []BowlingArm{BowlingArmRightFast, BowlingArmRightSpin, BowlingArmLeftFast, BowlingArmLeftSpin}
	Statuses      = []PlayerStatus{StatusActive, StatusInactive, StatusSuspended, StatusPending}
)

// IsAllowed reports whether v is one of allowed.
func IsAllowed[T ~string](v T, allowed []T) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
