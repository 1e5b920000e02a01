package vision

import "fmt"

// Focus values steer the description's emphasis.
const (
	FocusGeneral = "general"
	FocusCode    = "code"
	FocusUI      = "ui"
	FocusText    = "text"
	FocusBrowser = "browser"
)

// Focuses lists the accepted focus values.
var Focuses = []string{FocusGeneral, FocusCode, FocusUI, FocusText, FocusBrowser}

var focusPrompts = map[string]string{
	FocusGeneral: "Describe what you see on this computer screen. " +
		"Mention the main application(s) visible, key content, and any notable elements. " +
		"Be concise but comprehensive.",
	FocusCode: "This is a screenshot of a developer's screen. Focus on: " +
		"1. What programming language/framework is being used " +
		"2. What the code appears to be doing " +
		"3. Any visible errors, warnings, or terminal output " +
		"4. File names and project structure if visible " +
		"Be technical and specific.",
	FocusUI: "Describe the user interface visible on this screen. " +
		"Focus on: layout, main UI components, buttons, menus, forms, " +
		"and the overall application structure. " +
		"Describe it as if helping someone navigate the interface.",
	FocusText: "Read and transcribe the main text content visible on this screen. " +
		"Focus on: headings, body text, labels, and any important messages. " +
		"Organize the text logically.",
	FocusBrowser: "Describe this web browser screenshot. Include: " +
		"1. The website/URL if visible " +
		"2. Main page content and structure " +
		"3. Navigation elements " +
		"4. Any forms, buttons, or interactive elements " +
		"5. Key text content",
}

// FocusPrompt returns the prompt for a focus hint, defaulting to general
// for unknown values.
func FocusPrompt(focus string) string {
	if p, ok := focusPrompts[focus]; ok {
		return p
	}
	return focusPrompts[FocusGeneral]
}

// QuestionPrompt wraps a literal caller question.
func QuestionPrompt(question string) string {
	return fmt.Sprintf("Look at this screenshot and answer the following question:\n\n"+
		"Question: %s\n\n"+
		"Provide a direct, helpful answer based on what you can see.", question)
}

// ValidFocus reports whether focus is one of the accepted values.
func ValidFocus(focus string) bool {
	_, ok := focusPrompts[focus]
	return ok
}
