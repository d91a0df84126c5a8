package locale

var english = map[string]string{
	// Submission validation
	"addToilet.validation.nameMin":               "Name must be at least {min} characters.",
	"addToilet.validation.nameMax":               "Name must be at most {max} characters.",
	"addToilet.validation.latitudeRequired":      "Latitude is required and must be a number.",
	"addToilet.validation.latitudeRange":         "Latitude must be between -90 and 90.",
	"addToilet.validation.longitudeRequired":     "Longitude is required and must be a number.",
	"addToilet.validation.longitudeRange":        "Longitude must be between -180 and 180.",
	"addToilet.validation.addressMax":            "Address must be at most {max} characters.",
	"addToilet.validation.wheelchairAccessible":  "Choose yes, no or not sure.",
	"addToilet.validation.inaccessibleReasonMax": "Reason must be at most {max} characters.",
	"addToilet.validation.ratingRequired":        "Please give a rating.",
	"addToilet.validation.ratingMinMax":          "Rating must be between 1 and 5.",
	"addToilet.validation.reviewMax":             "Review must be at most {max} characters.",

	// Entity defaults
	"addToilet.defaultAddress": "Near {lat}, {lng}",

	// Map / geocoding feedback
	"addToilet.mapFeedback.initial":                 "Click on the map to set the toilet's location, or use your current location.",
	"addToilet.mapFeedback.loading":                 "Looking up location…",
	"addToilet.mapFeedback.locationUpdated":         "Location updated: {address}",
	"addToilet.mapFeedback.locationSetNoAddress":    "Location set. Could not find an address for this point.",
	"addToilet.mapFeedback.geocoderNoResults":       "No results found for that address.",
	"addToilet.mapFeedback.geocoderNotAvailable":    "Address lookup is not available right now.",
	"addToilet.mapFeedback.geocoderFailed":          "Address lookup failed: {status}",
	"addToilet.mapFeedback.locating":                "Finding your location…",
	"addToilet.mapFeedback.locationError":           "Could not get your location: {message}",
	"addToilet.mapFeedback.geolocationNotSupported": "Your device does not support location lookup.",

	// Submission outcomes
	"addToilet.toast.added":        "{name} has been successfully added to LooView.",
	"addToilet.toast.authRequired": "You must be logged in to add a toilet.",
	"addToilet.toast.authPending":  "Authentication status is loading…",

	// Registry labels
	"constants.toiletFeatures.hasSoap.label":        "Soap",
	"constants.toiletFeatures.hasToiletPaper.label": "Toilet paper",
	"constants.toiletTypes.public.label":            "Public",
	"constants.accessibilityOptions.yes.label":      "Yes",
	"constants.accessibilityOptions.no.label":       "No",
	"constants.accessibilityOptions.not_sure.label": "Not sure",
}

var dutch = map[string]string{
	"addToilet.validation.nameMin":               "Naam moet minstens {min} tekens bevatten.",
	"addToilet.validation.nameMax":               "Naam mag hoogstens {max} tekens bevatten.",
	"addToilet.validation.latitudeRequired":      "Breedtegraad is verplicht en moet een getal zijn.",
	"addToilet.validation.latitudeRange":         "Breedtegraad moet tussen -90 en 90 liggen.",
	"addToilet.validation.longitudeRequired":     "Lengtegraad is verplicht en moet een getal zijn.",
	"addToilet.validation.longitudeRange":        "Lengtegraad moet tussen -180 en 180 liggen.",
	"addToilet.validation.addressMax":            "Adres mag hoogstens {max} tekens bevatten.",
	"addToilet.validation.wheelchairAccessible":  "Kies ja, nee of weet niet.",
	"addToilet.validation.inaccessibleReasonMax": "Reden mag hoogstens {max} tekens bevatten.",
	"addToilet.validation.ratingRequired":        "Geef een beoordeling.",
	"addToilet.validation.ratingMinMax":          "Beoordeling moet tussen 1 en 5 liggen.",
	"addToilet.validation.reviewMax":             "Recensie mag hoogstens {max} tekens bevatten.",

	"addToilet.defaultAddress": "Nabij {lat}, {lng}",

	"addToilet.mapFeedback.initial":                 "Klik op de kaart om de locatie van het toilet in te stellen, of gebruik je huidige locatie.",
	"addToilet.mapFeedback.loading":                 "Locatie opzoeken…",
	"addToilet.mapFeedback.locationUpdated":         "Locatie bijgewerkt: {address}",
	"addToilet.mapFeedback.locationSetNoAddress":    "Locatie ingesteld. Geen adres gevonden voor dit punt.",
	"addToilet.mapFeedback.geocoderNoResults":       "Geen resultaten gevonden voor dat adres.",
	"addToilet.mapFeedback.geocoderNotAvailable":    "Adres opzoeken is nu niet beschikbaar.",
	"addToilet.mapFeedback.geocoderFailed":          "Adres opzoeken mislukt: {status}",
	"addToilet.mapFeedback.locating":                "Je locatie bepalen…",
	"addToilet.mapFeedback.locationError":           "Kon je locatie niet bepalen: {message}",
	"addToilet.mapFeedback.geolocationNotSupported": "Je apparaat ondersteunt geen locatiebepaling.",

	"addToilet.toast.added":        "{name} is toegevoegd aan LooView.",
	"addToilet.toast.authRequired": "Je moet ingelogd zijn om een toilet toe te voegen.",
	"addToilet.toast.authPending":  "Inlogstatus wordt geladen…",

	"constants.toiletFeatures.hasSoap.label":        "Zeep",
	"constants.toiletFeatures.hasToiletPaper.label": "Toiletpapier",
	"constants.toiletTypes.public.label":            "Openbaar",
	"constants.accessibilityOptions.yes.label":      "Ja",
	"constants.accessibilityOptions.no.label":       "Nee",
	"constants.accessibilityOptions.not_sure.label": "Weet niet",
}
