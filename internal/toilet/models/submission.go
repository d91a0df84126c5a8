package models

// RawSubmission is the user-editable form payload as received. Numeric
// fields are left loosely typed so that non-numeric input is reported as a
// field error instead of failing the whole decode.
type RawSubmission struct {
	Name                 string   `json:"name"`
	Latitude             any      `json:"latitude"`
	Longitude            any      `json:"longitude"`
	Address              string   `json:"address"`
	LocationType         string   `json:"locationType"`
	WheelchairAccessible string   `json:"wheelchairAccessible"`
	ThresholdFree        *bool    `json:"thresholdFree"`
	WheelchairSpace      *bool    `json:"wheelchairSpace"`
	GrabBars             *bool    `json:"grabBars"`
	AutomaticDoor        *bool    `json:"automaticDoor"`
	InaccessibleReason   string   `json:"inaccessibleReason"`
	SelectedToiletTypes  []string `json:"selectedToiletTypes"`
	Features             []string `json:"features"`
	Photo                string   `json:"photo"`
	Rating               any      `json:"rating"`
	Review               string   `json:"review"`
	QuickTags            []string `json:"quickTags"`
}

// Submission is a validated, fully-typed form payload.
type Submission struct {
	Name                 string
	Location             Location
	Address              string
	LocationType         string
	WheelchairAccessible WheelchairAccess
	ThresholdFree        bool
	WheelchairSpace      bool
	GrabBars             bool
	AutomaticDoor        bool
	InaccessibleReason   string
	SelectedToiletTypes  []string
	Features             []string
	// PhotoRef is the object reference of an uploaded image, if any.
	PhotoRef  string
	Rating    float64
	Review    string
	QuickTags []string
}
