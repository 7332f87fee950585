package chess

// Tag names used in game records.
const (
	EventTag       = "Event"
	SiteTag        = "Site"
	DateTag        = "Date"
	RoundTag       = "Round"
	WhiteTag       = "White"
	BlackTag       = "Black"
	ResultTag      = "Result"
	FENTag         = "FEN"
	SetUpTag       = "SetUp"
	PlyCountTag    = "PlyCount"
	TerminationTag = "Termination"

	// Opening classification
	ECOTag          = "ECO"
	OpeningTag      = "Opening"
	VariationTag    = "Variation"
	SubVariationTag = "SubVariation"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	EventTag,
	SiteTag,
	DateTag,
	RoundTag,
	WhiteTag,
	BlackTag,
	ResultTag,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}
