package models

// Known occasions. The store treats occasion as an opaque string; this
// catalog only drives editor defaults.
const (
	OccasionBirthday        = "birthday"
	OccasionChristmas       = "christmas"
	OccasionValentine       = "valentine"
	OccasionAnniversary     = "anniversary"
	OccasionEaster          = "easter"
	OccasionThankYou        = "thankyou"
	OccasionCongratulations = "congratulations"
	OccasionGraduation      = "graduation"
)

var defaultMessages = map[string]string{
	OccasionBirthday:    "Wishing you a fantastic birthday filled with joy and happiness!",
	OccasionChristmas:   "Wishing you a Merry Christmas and a Happy New Year!",
	OccasionEaster:      "Wishing you a hoppy Easter filled with joy and chocolate!",
	OccasionValentine:   "Sending you all my love on this special day!",
	OccasionAnniversary: "Celebrating the love and memories we've shared. Happy Anniversary!",
	OccasionThankYou:    "Thank you for everything. Your kindness means the world to me!",
}

// DefaultMessage returns the editor's stock message for an occasion.
func DefaultMessage(occasion string) string {
	if m, ok := defaultMessages[occasion]; ok {
		return m
	}
	return "Sending warm wishes your way!"
}
