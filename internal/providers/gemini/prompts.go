package gemini

import (
	"fmt"

	"agrifields/internal/domain"
	"agrifields/internal/i18n"
)

var systemInstructions = map[domain.Language]string{
	domain.LanguageEnglish: "You are Krishi Guru, a wise, friendly, and practical farming teacher. Answer simply. Focus on sustainable, organic, and cost-effective farming. If the user asks about crop diseases, be empathetic and precise.",
	domain.LanguageHindi:   "आप कृषि गुरु हैं, एक बुद्धिमान और मित्रवत किसान शिक्षक। सरल हिंदी में उत्तर दें। टिकाऊ और जैविक खेती पर ध्यान दें।",
	domain.LanguageTelugu:  "మీరు వ్యవసాయ గురువు (Krishi Guru). రైతులకు మిత్రుడు. సరళమైన తెలుగులో సమాధానం ఇవ్వండి.",
	domain.LanguageTamil:   "நீங்கள் விவசாய குரு. எளிய தமிழில் பதில் சொல்லுங்கள்.",
	domain.LanguageKannada: "ನೀವು ಕೃಷಿ ಗುರು. ಸರಳ ಕನ್ನಡದಲ್ಲಿ ಉತ್ತರಿಸಿ.",
	domain.LanguageMarathi: "तुम्ही कृषी गुरु आहात. सोप्या मराठीत उत्तर द्या.",
}

// SystemInstruction returns the tutor persona for lang, English when unknown.
func SystemInstruction(lang domain.Language) string {
	if s, ok := systemInstructions[lang]; ok {
		return s
	}
	return systemInstructions[domain.LanguageEnglish]
}

func imagePrompt(lang domain.Language) string {
	return fmt.Sprintf("Analyze this crop image. Identify the crop, potential diseases, and give 3 simple actionable steps to fix it. Respond in %s language.", i18n.EnglishName(lang.OrDefault()))
}

// Fixed replies used when the model cannot be reached.
const (
	ChatDemoReply    = "Demo Mode: Gemini API Key is missing. Please check configuration."
	ChatOfflineReply = "Offline Mode: I cannot reach the cloud right now. Please check your connection."
	ChatEmptyReply   = "I'm thinking... but couldn't find the right words."
	ImageDemoReply   = "Demo Mode: Cannot analyze image without API Key."
	ImageFailedReply = "Error analyzing image. Please try again."
	ImageEmptyReply  = "Could not analyze the image."
)

const (
	defaultImageMime = "image/jpeg"
	defaultModel     = "gemini-2.5-flash"
	chatTemperature  = 0.7
	defaultTimeout   = 60
)
