package geocoding

import "looview/internal/locale"

const feedbackPrefix = "addToilet.mapFeedback."

// Message renders the localized feedback line for a status.
func Message(tr locale.Translator, op Op, status Status, address, providerStatus, detail string) string {
	key, args := feedbackKey(op, status, address, providerStatus, detail)
	return tr.T(feedbackPrefix+key, args)
}

func feedbackKey(op Op, status Status, address, providerStatus, detail string) (string, map[string]any) {
	switch status {
	case StatusInitial:
		return "initial", nil
	case StatusLoading:
		return "loading", nil
	case StatusResolved:
		return "locationUpdated", map[string]any{"address": address}
	case StatusNoResult:
		if op == OpForward {
			return "geocoderNoResults", nil
		}
		return "locationSetNoAddress", nil
	case StatusUnavailable:
		return "geocoderNotAvailable", nil
	case StatusLocating:
		return "locating", nil
	case StatusLocationError:
		return "locationError", map[string]any{"message": detail}
	case StatusGeolocationNotSupported:
		return "geolocationNotSupported", nil
	default:
		return "geocoderFailed", map[string]any{"status": providerStatus}
	}
}

func feedback(tr locale.Translator, op Op, status Status, address, providerStatus, detail string) Feedback {
	return Feedback{Status: status, Message: Message(tr, op, status, address, providerStatus, detail)}
}
