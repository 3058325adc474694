package hscode

// Messages holds the user-facing text of the explanation lookup
type Messages struct {
	SectionNotFound    string
	HeadingNotFound    string
	SubheadingNotFound string
	BlockTitle         string // fmt pattern taking the code
	GeneralRulesLabel  string
	SectionLabel       string
	HeadingLabel       string
	SubheadingLabel    string
}

// KoreanMessages returns the default Korean messages
func KoreanMessages() Messages {
	return Messages{
		SectionNotFound:    "해당 부에 대한 설명을 찾을 수 없습니다.",
		HeadingNotFound:    "해당 류에 대한 설명을 찾을 수 없습니다.",
		SubheadingNotFound: "해당 호에 대한 설명을 찾을 수 없습니다.",
		BlockTitle:         "HS 코드 %s에 대한 해설:",
		GeneralRulesLabel:  "해설서 통칙:",
		SectionLabel:       "부 해설:",
		HeadingLabel:       "류 해설:",
		SubheadingLabel:    "호 해설:",
	}
}
