package parser

// ParserState names a point the partial parser can stop at. The set is the
// resumable-parsing state machine of the grammar, with no state renamed or
// merged, plus two states for the body of global settings
// (ExpectingGlobalTagOrSizeLimit, ExpectingGlobalTagOnly), which close on
// ']' instead of '}'.
type ParserState int

const (
	OutsidePlaceholder ParserState = iota
	InPlaceholder
	InGlobalSettings
	ExpectingIdentifier
	ExpectingColon
	ExpectingLanguageIdentifier
	ExpectingAfterLanguage
	ExpectingTagOrSizeLimit
	ExpectingTagOnly
	ExpectingGlobalTagOrSizeLimit
	ExpectingGlobalTagOnly
	ExpectingTagIdentifier
	ExpectingSizeLimit
	ExpectingOption
	ExpectingNumberLength
	ExpectingNumberBase
	ExpectingSpecialLength
	ExpectingSpecialRange
	ExpectingCloseBrace
	ExpectingCloseBracket
	PartialSelector
	PartialNumberGen
	PartialSpecialGen
	Complete
	Incomplete
	Invalid
)

var stateNames = map[ParserState]string{
	OutsidePlaceholder:            "OUTSIDE_PLACEHOLDER",
	InPlaceholder:                 "IN_PLACEHOLDER",
	InGlobalSettings:              "IN_GLOBAL_SETTINGS",
	ExpectingIdentifier:           "EXPECTING_IDENTIFIER",
	ExpectingColon:                "EXPECTING_COLON",
	ExpectingLanguageIdentifier:   "EXPECTING_LANGUAGE_IDENTIFIER",
	ExpectingAfterLanguage:        "EXPECTING_AFTER_LANGUAGE",
	ExpectingTagOrSizeLimit:       "EXPECTING_TAG_OR_SIZE_LIMIT",
	ExpectingTagOnly:              "EXPECTING_TAG_ONLY",
	ExpectingGlobalTagOrSizeLimit: "EXPECTING_GLOBAL_TAG_OR_SIZE_LIMIT",
	ExpectingGlobalTagOnly:        "EXPECTING_GLOBAL_TAG_ONLY",
	ExpectingTagIdentifier:        "EXPECTING_TAG_IDENTIFIER",
	ExpectingSizeLimit:            "EXPECTING_SIZE_LIMIT",
	ExpectingOption:               "EXPECTING_OPTION",
	ExpectingNumberLength:         "EXPECTING_NUMBER_LENGTH",
	ExpectingNumberBase:           "EXPECTING_NUMBER_BASE",
	ExpectingSpecialLength:        "EXPECTING_SPECIAL_LENGTH",
	ExpectingSpecialRange:         "EXPECTING_SPECIAL_RANGE",
	ExpectingCloseBrace:           "EXPECTING_CLOSE_BRACE",
	ExpectingCloseBracket:         "EXPECTING_CLOSE_BRACKET",
	PartialSelector:               "PARTIAL_SELECTOR",
	PartialNumberGen:              "PARTIAL_NUMBER_GEN",
	PartialSpecialGen:             "PARTIAL_SPECIAL_GEN",
	Complete:                      "COMPLETE",
	Incomplete:                    "INCOMPLETE",
	Invalid:                       "INVALID",
}

func (s ParserState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ExpectedToken names one kind of token that would be syntactically valid
// at a given parser state.
type ExpectedToken int

const (
	TokenIdentifier ExpectedToken = iota
	TokenColon
	TokenCloseBrace
	TokenCloseBracket
	TokenTagSpec
	TokenComparisonOp
	TokenNumber
	TokenOption
	TokenOpenBrace
	TokenOpenBracket
	TokenEquals
	TokenExclamation
	TokenPlus
	TokenMinus
	TokenDash
	TokenNumberBase
	TokenAtSign
)

var expectedTokenNames = map[ExpectedToken]string{
	TokenIdentifier:   "identifier",
	TokenColon:        "colon",
	TokenCloseBrace:   "close_brace",
	TokenCloseBracket: "close_bracket",
	TokenTagSpec:      "tag_spec",
	TokenComparisonOp: "comparison_op",
	TokenNumber:       "number",
	TokenOption:       "option",
	TokenOpenBrace:    "open_brace",
	TokenOpenBracket:  "open_bracket",
	TokenEquals:       "equals",
	TokenExclamation:  "exclamation",
	TokenPlus:         "plus",
	TokenMinus:        "minus",
	TokenDash:         "dash",
	TokenNumberBase:   "number_base",
	TokenAtSign:       "at_sign",
}

func (t ExpectedToken) String() string {
	if name, ok := expectedTokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// expectedTokens is a pure, table-driven mapping from state to the set of
// tokens that are syntactically valid next, kept as data rather than code
// so it can be tested and read independently of the state machine's
// control flow.
var expectedTokens = map[ParserState][]ExpectedToken{
	OutsidePlaceholder:            {TokenOpenBrace, TokenOpenBracket},
	InPlaceholder:                 {TokenIdentifier},
	InGlobalSettings:              {TokenAtSign, TokenTagSpec, TokenComparisonOp, TokenOption, TokenCloseBracket},
	ExpectingIdentifier:           {TokenIdentifier},
	ExpectingColon:                {TokenColon, TokenCloseBrace},
	ExpectingLanguageIdentifier:   {TokenIdentifier},
	ExpectingAfterLanguage:        {TokenColon, TokenCloseBrace},
	ExpectingTagOrSizeLimit:       {TokenTagSpec, TokenComparisonOp, TokenOption, TokenCloseBrace},
	ExpectingTagOnly:              {TokenTagSpec, TokenOption, TokenCloseBrace},
	ExpectingGlobalTagOrSizeLimit: {TokenTagSpec, TokenComparisonOp, TokenOption, TokenCloseBracket},
	ExpectingGlobalTagOnly:        {TokenTagSpec, TokenOption, TokenCloseBracket},
	ExpectingTagIdentifier:        {TokenIdentifier},
	ExpectingSizeLimit:            {TokenNumber, TokenCloseBrace},
	ExpectingOption:               {TokenIdentifier, TokenEquals, TokenOption},
	ExpectingNumberLength:         {TokenNumber},
	ExpectingNumberBase:           {TokenNumberBase, TokenCloseBrace},
	ExpectingSpecialLength:        {TokenNumber},
	ExpectingSpecialRange:         {TokenNumber, TokenCloseBrace},
	ExpectingCloseBrace:           {TokenCloseBrace},
	ExpectingCloseBracket:         {TokenCloseBracket},
	PartialSelector:               {TokenAtSign, TokenColon, TokenCloseBrace},
	PartialNumberGen:              {TokenColon, TokenCloseBrace},
	PartialSpecialGen:             {TokenColon, TokenCloseBrace},
	Complete:                      {TokenOpenBrace, TokenOpenBracket},
	Incomplete:                    {},
	Invalid:                       {},
}

// ExpectedTokensFor returns the tokens that would be syntactically valid
// next from state, per the pure lookup table above.
func ExpectedTokensFor(state ParserState) []ExpectedToken {
	tokens := expectedTokens[state]
	out := make([]ExpectedToken, len(tokens))
	copy(out, tokens)
	return out
}
