package auth

// Feature is a landing page highlight.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var features = []Feature{
	{"AI-Powered Itineraries", "Get personalized trip plans tailored to your preferences, budget, and travel style."},
	{"Smart Route Planning", "Optimized routes that save time and help you discover the best spots along the way."},
	{"Safety First", "Real-time safety alerts, SOS features, and emergency contacts for peace of mind."},
	{"Offline Access", "Download your itinerary and maps to access everything without internet connection."},
	{"Smart Budget Calculator", "Track, split, and convert expenses in real time."},
}

// Features returns the landing page highlights in display order.
func Features() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}
