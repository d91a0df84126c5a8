package registry

// Features enumerates amenities a toilet can offer.
var Features = MustNew("toiletFeatures",
	FeatureConfig{ID: "hasSoap", Label: "Soap", Description: "Soap is available at the sink.", Icon: "SoapDispenserDroplet", Category: "hygiene"},
	FeatureConfig{ID: "hasToiletPaper", Label: "Toilet paper", Description: "Toilet paper is stocked.", Icon: "ScrollText", Category: "hygiene"},
	FeatureConfig{ID: "hasHandDryer", Label: "Hand dryer", Description: "An electric hand dryer is installed.", Icon: "Wind", Category: "hygiene"},
	FeatureConfig{ID: "hasPaperTowels", Label: "Paper towels", Description: "Paper towels are available.", Icon: "Layers", Category: "hygiene"},
	FeatureConfig{ID: "hasHotWater", Label: "Hot water", Description: "The taps provide warm water.", Icon: "Thermometer", Category: "hygiene"},
	FeatureConfig{ID: "hasMirror", Label: "Mirror", Description: "There is a mirror above the sink.", Icon: "Square", Category: "comfort"},
	FeatureConfig{ID: "hasBabyChanging", Label: "Baby changing", Description: "A baby changing table is available.", Icon: "Baby", Category: "family"},
	FeatureConfig{ID: "hasSanitaryBins", Label: "Sanitary bins", Description: "Sanitary disposal bins are provided.", Icon: "Trash2", Category: "hygiene"},
	FeatureConfig{ID: "hasPeriodProducts", Label: "Period products", Description: "Free period products are available.", Icon: "Heart", Category: "hygiene"},
	FeatureConfig{ID: "hasShower", Label: "Shower", Description: "A shower is available.", Icon: "ShowerHead", Category: "comfort"},
	FeatureConfig{ID: "isFree", Label: "Free to use", Description: "No payment is needed.", Icon: "BadgeEuro", Category: "access"},
)

// ToiletTypes enumerates classifications of the facility itself.
var ToiletTypes = MustNew("toiletTypes",
	FeatureConfig{ID: "public", Label: "Public", Description: "Open to anyone.", Icon: "Users"},
	FeatureConfig{ID: "customerOnly", Label: "Customers only", Description: "Reserved for customers of the venue.", Icon: "ShoppingBag"},
	FeatureConfig{ID: "paid", Label: "Paid", Description: "Requires a fee or coin.", Icon: "Coins"},
	FeatureConfig{ID: "portable", Label: "Portable", Description: "A portable cabin.", Icon: "Container"},
	FeatureConfig{ID: "genderNeutral", Label: "Gender neutral", Description: "Single-occupancy or all-gender.", Icon: "CircleUser"},
	FeatureConfig{ID: "family", Label: "Family", Description: "Room for a carer or children.", Icon: "Users2"},
)

// QuickTagCategories groups quick tags for display.
var QuickTagCategories = MustNew("quickTagCategories",
	FeatureConfig{ID: "cleanliness", Label: "Cleanliness", Icon: "Sparkles"},
	FeatureConfig{ID: "experience", Label: "Experience", Icon: "Smile"},
	FeatureConfig{ID: "practical", Label: "Practical", Icon: "Info"},
)

// QuickTags are short review chips. Each belongs to a QuickTagCategories id.
var QuickTags = MustNew("quickTags",
	FeatureConfig{ID: "spotless", Label: "Spotless", Icon: "Sparkles", Category: "cleanliness"},
	FeatureConfig{ID: "smelly", Label: "Smelly", Icon: "CloudFog", Category: "cleanliness"},
	FeatureConfig{ID: "needsCleaning", Label: "Needs cleaning", Icon: "Brush", Category: "cleanliness"},
	FeatureConfig{ID: "goodLighting", Label: "Good lighting", Icon: "Lightbulb", Category: "experience"},
	FeatureConfig{ID: "quiet", Label: "Quiet", Icon: "VolumeX", Category: "experience"},
	FeatureConfig{ID: "longQueue", Label: "Long queue", Icon: "Clock", Category: "practical"},
	FeatureConfig{ID: "hardToFind", Label: "Hard to find", Icon: "MapPinOff", Category: "practical"},
	FeatureConfig{ID: "openLate", Label: "Open late", Icon: "Moon", Category: "practical"},
)

// LocationTypes is the open enumeration of where a toilet is situated.
// Values outside this list are accepted; the list only drives pickers.
var LocationTypes = MustNew("locationTypes",
	FeatureConfig{ID: "cafe", Label: "Café"},
	FeatureConfig{ID: "restaurant", Label: "Restaurant"},
	FeatureConfig{ID: "bar", Label: "Bar or pub"},
	FeatureConfig{ID: "public_building", Label: "Public building"},
	FeatureConfig{ID: "shopping_center", Label: "Shopping centre"},
	FeatureConfig{ID: "park", Label: "Park"},
	FeatureConfig{ID: "gas_station", Label: "Petrol station"},
	FeatureConfig{ID: "train_station", Label: "Train station"},
	FeatureConfig{ID: "other", Label: "Other"},
)

// AccessibilityOptions lists the wheelchair answers in display order.
var AccessibilityOptions = MustNew("accessibilityOptions",
	FeatureConfig{ID: "yes", Label: "Yes"},
	FeatureConfig{ID: "no", Label: "No"},
	FeatureConfig{ID: "not_sure", Label: "Not sure"},
)
