package render

// Static campaign letter copy. The renderer fills the signer's details into
// the signature block; everything else is fixed text.

const (
	letterTitle     = "CLEAN AIR! MY RIGHT"
	letterTo        = "TO:"
	letterAddressee = "Kind Attention Prime Minister, Chief Minister & the Leader of Opposition"

	footerLine1 = "A citizen-led movement demanding honest AQI data and real action on Delhi's air pollution crisis."
	footerLine2 = "(c) 2025 Saaf Hawa | Citizen-led initiative"

	certStatement = "has signed the petition to protect India's oldest mountain range"
)

type letterParagraph struct {
	text     string
	emphasis bool
}

var letterParagraphs = []letterParagraph{
	{text: "I am signing this because the air in Delhi has become a daily health threat for my family. " +
		"The coughing, the burning throat, the breathlessness, these are now part of our lives. " +
		"What makes it worse is that the AQI shown to us often does not match what we feel in our lungs."},
	{text: "Please don't hiding the reality of our air. Please ensure that AQI data is not manipulated.", emphasis: true},
	{text: "give us the truth so we can protect our children and elders. Treat this as the health emergency it is. " +
		"Delhi deserves honest data and real action. We want you to act and take strong measures rather than Band-Aid solutions."},
	{text: "Clean air is my fundamental right. Please protect it.", emphasis: true},
}
