// Package i18n holds the UI string table for the six supported languages and
// the helpers that pick a language for a request.
package i18n

import (
	"sort"

	"agrifields/internal/domain"
)

// Strings is the string table of one language. Keys are "section.name".
type Strings struct {
	lang    domain.Language
	entries map[string]string
}

// Language reports which table this is.
func (s Strings) Language() domain.Language { return s.lang }

// T returns the string for key, falling back to English and then to the key
// itself so that a missing translation never renders blank.
func (s Strings) T(key string) string {
	if v, ok := s.entries[key]; ok && v != "" {
		return v
	}
	if v, ok := tables[domain.LanguageEnglish][key]; ok {
		return v
	}
	return key
}

// Section returns every key of a section with fallbacks applied, keyed by the
// name without the section prefix.
func (s Strings) Section(section string) map[string]string {
	prefix := section + "."
	out := make(map[string]string)
	for key := range tables[domain.LanguageEnglish] {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out[key[len(prefix):]] = s.T(key)
		}
	}
	return out
}

// All returns the complete table with fallbacks applied.
func (s Strings) All() map[string]string {
	out := make(map[string]string, len(tables[domain.LanguageEnglish]))
	for key := range tables[domain.LanguageEnglish] {
		out[key] = s.T(key)
	}
	return out
}

// For returns the table for lang; unsupported languages get English.
func For(lang domain.Language) Strings {
	lang = lang.OrDefault()
	return Strings{lang: lang, entries: tables[lang]}
}

// Keys lists the English keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(tables[domain.LanguageEnglish]))
	for key := range tables[domain.LanguageEnglish] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var tables = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		"nav.home":     "Home",
		"nav.guru":     "Krishi Guru",
		"nav.doctor":   "Crop Doctor",
		"nav.lessons":  "Lessons",
		"nav.profile":  "Profile",
		"nav.logout":   "Logout",
		"nav.login":    "Login",
		"nav.theme":    "Theme",
		"nav.language": "Language",

		"landing.heroTitle":     "Grow Smarter.",
		"landing.heroSub":       "Your AI farming companion",
		"landing.heroDesc":      "Ask Krishi Guru anything, scan sick crops, and learn modern methods in your own language.",
		"landing.launch":        "Launch App",
		"landing.start":         "Get Started",
		"landing.servicesTitle": "What we offer",
		"landing.journeyTitle":  "Your journey",

		"auth.welcome":          "Welcome Back",
		"auth.loginDesc":        "Log in with your phone number.",
		"auth.join":             "Join AgriFields",
		"auth.joinDesc":         "Create your farmer account.",
		"auth.admin":            "Admin Access",
		"auth.adminDesc":        "Restricted to AgriFields staff.",
		"auth.name":             "Full Name",
		"auth.phone":            "Phone Number",
		"auth.email":            "Email",
		"auth.password":         "Password",
		"auth.lang":             "Preferred Language",
		"auth.enter":            "Enter",
		"auth.start":            "Start Farming",
		"auth.auth":             "Authenticate",
		"auth.existing":         "Already have an account? Log in",
		"auth.newUser":          "New here? Register",
		"auth.adminAccess":      "Admin Login",
		"auth.farmerAccess":     "Farmer Login",
		"auth.errorPhone":       "Please enter a valid 10-digit phone number.",
		"auth.errorPass":        "Password must be at least 6 characters.",
		"auth.errorName":        "Please enter your name.",
		"auth.errorEmail":       "Please enter a valid email address.",
		"auth.errorExists":      "User already exists. Please login.",
		"auth.errorCredentials": "Invalid credentials or user not found.",
		"auth.errorNotAdmin":    "Access Denied: Not an admin account.",
		"auth.errorNotFound":    "User not found. Please register.",
		"auth.errorUnknown":     "Something went wrong. Please try again.",

		"dashboard.greeting":      "Namaste",
		"dashboard.subtitle":      "Here is your farm today.",
		"dashboard.liveFeed":      "Live Feed",
		"dashboard.aiBadge":       "AI Insight",
		"dashboard.aiText":        "Soil moisture is good. A light irrigation in the evening will help.",
		"dashboard.weather":       "Weather",
		"dashboard.scan":          "Scan Crop",
		"dashboard.scanDesc":      "Find diseases from a photo",
		"dashboard.soil":          "Soil Health",
		"dashboard.soilDesc":      "Nutrients and moisture",
		"dashboard.academy":       "Academy",
		"dashboard.academyDesc":   "Learn with Krishi Guru",
		"dashboard.community":     "Community",
		"dashboard.communityDesc": "Talk to other farmers",

		"admin.title":    "Command",
		"admin.subtitle": "System status",
		"admin.status":   "Operational",
		"admin.farmers":  "Farmers",
		"admin.queries":  "AI Queries",
		"admin.alerts":   "Alerts",
		"admin.signals":  "Field Signals",
		"admin.denied":   "ACCESS DENIED",

		"teacher.title":       "Krishi Guru",
		"teacher.intro":       "Namaste! I am Krishi Guru. Ask me anything about your crops, soil, or weather.",
		"teacher.placeholder": "Type your question...",
		"teacher.thinking":    "Thinking...",
		"teacher.listening":   "Listening...",
		"teacher.you":         "You",
		"teacher.ai":          "Guru",

		"doctor.title":      "Crop Doctor",
		"doctor.ready":      "Scanner ready",
		"doctor.tapScan":    "Tap to scan a leaf",
		"doctor.support":    "Supports JPG and PNG",
		"doctor.analyzing":  "Analyzing...",
		"doctor.confidence": "Confidence",
		"doctor.start":      "Start Diagnosis",
		"doctor.complete":   "Diagnosis complete",
		"doctor.read":       "Read aloud",
		"doctor.share":      "Share",

		"profile.title":    "Edit Profile",
		"profile.yourName": "Your Name",
		"profile.prefLang": "Preferred Language",
		"profile.phone":    "Phone Number",
		"profile.update":   "Update Profile",
		"profile.cancel":   "Cancel",
		"profile.saved":    "Profile updated successfully!",
		"profile.role":     "Role",

		"lessons.title": "Lessons Module Coming Soon",
		"lessons.desc":  "We are building the curriculum.",

		"common.loading": "Loading...",
	},
	domain.LanguageHindi: {
		"nav.home":     "होम",
		"nav.guru":     "कृषि गुरु",
		"nav.doctor":   "फसल डॉक्टर",
		"nav.lessons":  "पाठ",
		"nav.profile":  "प्रोफ़ाइल",
		"nav.logout":   "लॉग आउट",
		"nav.login":    "लॉग इन",
		"nav.language": "भाषा",

		"landing.heroTitle": "समझदारी से खेती करें।",
		"landing.heroSub":   "आपका AI खेती साथी",
		"landing.launch":    "ऐप खोलें",
		"landing.start":     "शुरू करें",

		"auth.welcome":          "वापसी पर स्वागत है",
		"auth.loginDesc":        "अपने फ़ोन नंबर से लॉग इन करें।",
		"auth.join":             "एग्रीफील्ड्स से जुड़ें",
		"auth.joinDesc":         "अपना किसान खाता बनाएं।",
		"auth.name":             "पूरा नाम",
		"auth.phone":            "फ़ोन नंबर",
		"auth.password":         "पासवर्ड",
		"auth.lang":             "पसंदीदा भाषा",
		"auth.errorPhone":       "कृपया सही 10 अंकों का फ़ोन नंबर दर्ज करें।",
		"auth.errorPass":        "पासवर्ड कम से कम 6 अक्षरों का होना चाहिए।",
		"auth.errorName":        "कृपया अपना नाम दर्ज करें।",
		"auth.errorExists":      "उपयोगकर्ता पहले से मौजूद है। कृपया लॉग इन करें।",
		"auth.errorCredentials": "गलत जानकारी या उपयोगकर्ता नहीं मिला।",

		"dashboard.greeting": "नमस्ते",
		"dashboard.subtitle": "आज आपका खेत।",
		"dashboard.scan":     "फसल स्कैन करें",
		"dashboard.weather":  "मौसम",

		"teacher.title":       "कृषि गुरु",
		"teacher.intro":       "नमस्ते! मैं कृषि गुरु हूँ। अपनी फसल, मिट्टी या मौसम के बारे में कुछ भी पूछें।",
		"teacher.placeholder": "अपना सवाल लिखें...",
		"teacher.thinking":    "सोच रहा हूँ...",
		"teacher.you":         "आप",
		"teacher.ai":          "गुरु",

		"doctor.title":     "फसल डॉक्टर",
		"doctor.analyzing": "जांच हो रही है...",
		"doctor.start":     "जांच शुरू करें",

		"profile.title":    "प्रोफ़ाइल बदलें",
		"profile.yourName": "आपका नाम",
		"profile.prefLang": "पसंदीदा भाषा",
		"profile.phone":    "फ़ोन नंबर",
		"profile.update":   "प्रोफ़ाइल अपडेट करें",
		"profile.cancel":   "रद्द करें",
		"profile.saved":    "प्रोफ़ाइल सफलतापूर्वक अपडेट हुई!",

		"lessons.title": "पाठ जल्द आ रहे हैं",
	},
	domain.LanguageTelugu: {
		"nav.home":    "హోమ్",
		"nav.guru":    "కృషి గురు",
		"nav.doctor":  "పంట డాక్టర్",
		"nav.profile": "ప్రొఫైల్",
		"nav.logout":  "లాగ్ అవుట్",
		"nav.login":   "లాగిన్",

		"auth.welcome":    "తిరిగి స్వాగతం",
		"auth.join":       "అగ్రిఫీల్డ్స్‌లో చేరండి",
		"auth.name":       "పూర్తి పేరు",
		"auth.phone":      "ఫోన్ నంబర్",
		"auth.password":   "పాస్‌వర్డ్",
		"auth.errorPhone": "దయచేసి సరైన 10 అంకెల ఫోన్ నంబర్ ఇవ్వండి.",
		"auth.errorPass":  "పాస్‌వర్డ్ కనీసం 6 అక్షరాలు ఉండాలి.",
		"auth.errorName":  "దయచేసి మీ పేరు ఇవ్వండి.",

		"dashboard.greeting": "నమస్కారం",
		"dashboard.scan":     "పంటను స్కాన్ చేయండి",

		"teacher.title":       "కృషి గురు",
		"teacher.intro":       "నమస్కారం! నేను కృషి గురు. మీ పంట, నేల లేదా వాతావరణం గురించి ఏదైనా అడగండి.",
		"teacher.placeholder": "మీ ప్రశ్న రాయండి...",

		"doctor.title": "పంట డాక్టర్",

		"profile.title":    "ప్రొఫైల్ మార్చండి",
		"profile.yourName": "మీ పేరు",
		"profile.prefLang": "ఇష్టమైన భాష",
		"profile.update":   "ప్రొఫైల్ నవీకరించండి",
		"profile.cancel":   "రద్దు చేయండి",
	},
	domain.LanguageTamil: {
		"nav.home":    "முகப்பு",
		"nav.guru":    "விவசாய குரு",
		"nav.doctor":  "பயிர் மருத்துவர்",
		"nav.profile": "சுயவிவரம்",
		"nav.logout":  "வெளியேறு",
		"nav.login":   "உள்நுழை",

		"auth.welcome":    "மீண்டும் வருக",
		"auth.join":       "அக்ரிஃபீல்ட்ஸில் சேருங்கள்",
		"auth.name":       "முழு பெயர்",
		"auth.phone":      "தொலைபேசி எண்",
		"auth.password":   "கடவுச்சொல்",
		"auth.errorPhone": "சரியான 10 இலக்க தொலைபேசி எண்ணை உள்ளிடவும்.",
		"auth.errorPass":  "கடவுச்சொல் குறைந்தது 6 எழுத்துகள் இருக்க வேண்டும்.",
		"auth.errorName":  "உங்கள் பெயரை உள்ளிடவும்.",

		"dashboard.greeting": "வணக்கம்",

		"teacher.title":       "விவசாய குரு",
		"teacher.intro":       "வணக்கம்! நான் விவசாய குரு. உங்கள் பயிர், மண் அல்லது வானிலை பற்றி எதையும் கேளுங்கள்.",
		"teacher.placeholder": "உங்கள் கேள்வியை எழுதுங்கள்...",

		"doctor.title": "பயிர் மருத்துவர்",

		"profile.title":    "சுயவிவரத்தைத் திருத்து",
		"profile.yourName": "உங்கள் பெயர்",
		"profile.update":   "புதுப்பி",
		"profile.cancel":   "ரத்து",
	},
	domain.LanguageKannada: {
		"nav.home":    "ಮುಖಪುಟ",
		"nav.guru":    "ಕೃಷಿ ಗುರು",
		"nav.doctor":  "ಬೆಳೆ ವೈದ್ಯ",
		"nav.profile": "ಪ್ರೊಫೈಲ್",
		"nav.logout":  "ಲಾಗ್ ಔಟ್",
		"nav.login":   "ಲಾಗಿನ್",

		"auth.welcome":    "ಮರಳಿ ಸ್ವಾಗತ",
		"auth.name":       "ಪೂರ್ಣ ಹೆಸರು",
		"auth.phone":      "ಫೋನ್ ಸಂಖ್ಯೆ",
		"auth.password":   "ಪಾಸ್‌ವರ್ಡ್",
		"auth.errorPhone": "ದಯವಿಟ್ಟು ಸರಿಯಾದ 10 ಅಂಕಿಯ ಫೋನ್ ಸಂಖ್ಯೆ ನಮೂದಿಸಿ.",
		"auth.errorPass":  "ಪಾಸ್‌ವರ್ಡ್ ಕನಿಷ್ಠ 6 ಅಕ್ಷರಗಳಿರಬೇಕು.",
		"auth.errorName":  "ದಯವಿಟ್ಟು ನಿಮ್ಮ ಹೆಸರು ನಮೂದಿಸಿ.",

		"dashboard.greeting": "ನಮಸ್ಕಾರ",

		"teacher.title":       "ಕೃಷಿ ಗುರು",
		"teacher.intro":       "ನಮಸ್ಕಾರ! ನಾನು ಕೃಷಿ ಗುರು. ನಿಮ್ಮ ಬೆಳೆ, ಮಣ್ಣು ಅಥವಾ ಹವಾಮಾನದ ಬಗ್ಗೆ ಏನಾದರೂ ಕೇಳಿ.",
		"teacher.placeholder": "ನಿಮ್ಮ ಪ್ರಶ್ನೆ ಬರೆಯಿರಿ...",

		"doctor.title": "ಬೆಳೆ ವೈದ್ಯ",

		"profile.title":    "ಪ್ರೊಫೈಲ್ ತಿದ್ದಿ",
		"profile.yourName": "ನಿಮ್ಮ ಹೆಸರು",
		"profile.update":   "ನವೀಕರಿಸಿ",
		"profile.cancel":   "ರದ್ದುಮಾಡಿ",
	},
	domain.LanguageMarathi: {
		"nav.home":    "मुख्यपृष्ठ",
		"nav.guru":    "कृषी गुरु",
		"nav.doctor":  "पीक डॉक्टर",
		"nav.profile": "प्रोफाइल",
		"nav.logout":  "लॉग आउट",
		"nav.login":   "लॉग इन",

		"auth.welcome":    "पुन्हा स्वागत आहे",
		"auth.name":       "पूर्ण नाव",
		"auth.phone":      "फोन नंबर",
		"auth.password":   "पासवर्ड",
		"auth.errorPhone": "कृपया योग्य 10 अंकी फोन नंबर टाका.",
		"auth.errorPass":  "पासवर्ड किमान 6 अक्षरांचा असावा.",
		"auth.errorName":  "कृपया तुमचे नाव टाका.",

		"dashboard.greeting": "नमस्कार",

		"teacher.title":       "कृषी गुरु",
		"teacher.intro":       "नमस्कार! मी कृषी गुरु आहे. तुमचे पीक, माती किंवा हवामान याबद्दल काहीही विचारा.",
		"teacher.placeholder": "तुमचा प्रश्न लिहा...",

		"doctor.title": "पीक डॉक्टर",

		"profile.title":    "प्रोफाइल बदला",
		"profile.yourName": "तुमचे नाव",
		"profile.update":   "प्रोफाइल अपडेट करा",
		"profile.cancel":   "रद्द करा",
	},
}
