package parser

// symbolTable maps command names to the Unicode glyph the layout engine
// eventually draws. Covers the math-mode subset: Greek letters, binary
// operators, relations, arrows, dots and miscellaneous symbols.
var symbolTable = map[string]string{
	// Greek lowercase
	"alpha":      "α",
	"beta":       "β",
	"gamma":      "γ",
	"delta":      "δ",
	"epsilon":    "ϵ",
	"varepsilon": "ε",
	"zeta":       "ζ",
	"eta":        "η",
	"theta":      "θ",
	"vartheta":   "ϑ",
	"iota":       "ι",
	"kappa":      "κ",
	"lambda":     "λ",
	"mu":         "μ",
	"nu":         "ν",
	"xi":         "ξ",
	"omicron":    "ο",
	"pi":         "π",
	"varpi":      "ϖ",
	"rho":        "ρ",
	"varrho":     "ϱ",
	"sigma":      "σ",
	"varsigma":   "ς",
	"tau":        "τ",
	"upsilon":    "υ",
	"phi":        "ϕ",
	"varphi":     "φ",
	"chi":        "χ",
	"psi":        "ψ",
	"omega":      "ω",

	// Greek uppercase
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",

	// Binary operators
	"pm":       "±",
	"mp":       "∓",
	"times":    "×",
	"div":      "÷",
	"cdot":     "⋅",
	"ast":      "∗",
	"star":     "⋆",
	"circ":     "∘",
	"bullet":   "∙",
	"cap":      "∩",
	"cup":      "∪",
	"sqcap":    "⊓",
	"sqcup":    "⊔",
	"vee":      "∨",
	"lor":      "∨",
	"wedge":    "∧",
	"land":     "∧",
	"setminus": "∖",
	"wr":       "≀",
	"oplus":    "⊕",
	"ominus":   "⊖",
	"otimes":   "⊗",
	"oslash":   "⊘",
	"odot":     "⊙",
	"dagger":   "†",
	"ddagger":  "‡",
	"amalg":    "⨿",
	"diamond":  "⋄",

	// Relations
	"leq":        "≤",
	"le":         "≤",
	"geq":        "≥",
	"ge":         "≥",
	"equiv":      "≡",
	"models":     "⊨",
	"prec":       "≺",
	"succ":       "≻",
	"preceq":     "⪯",
	"succeq":     "⪰",
	"sim":        "∼",
	"simeq":      "≃",
	"perp":       "⊥",
	"mid":        "∣",
	"parallel":   "∥",
	"subset":     "⊂",
	"supset":     "⊃",
	"subseteq":   "⊆",
	"supseteq":   "⊇",
	"sqsubseteq": "⊑",
	"sqsupseteq": "⊒",
	"in":         "∈",
	"ni":         "∋",
	"notin":      "∉",
	"approx":     "≈",
	"cong":       "≅",
	"neq":        "≠",
	"ne":         "≠",
	"doteq":      "≐",
	"propto":     "∝",
	"asymp":      "≍",
	"bowtie":     "⋈",
	"vdash":      "⊢",
	"dashv":      "⊣",
	"ll":         "≪",
	"gg":         "≫",

	// Arrows
	"leftarrow":          "←",
	"gets":               "←",
	"rightarrow":         "→",
	"to":                 "→",
	"leftrightarrow":     "↔",
	"Leftarrow":          "⇐",
	"Rightarrow":         "⇒",
	"Leftrightarrow":     "⇔",
	"mapsto":             "↦",
	"hookleftarrow":      "↩",
	"hookrightarrow":     "↪",
	"leftharpoonup":      "↼",
	"rightharpoonup":     "⇀",
	"leftharpoondown":    "↽",
	"rightharpoondown":   "⇁",
	"rightleftharpoons":  "⇌",
	"uparrow":            "↑",
	"downarrow":          "↓",
	"updownarrow":        "↕",
	"Uparrow":            "⇑",
	"Downarrow":          "⇓",
	"Updownarrow":        "⇕",
	"nearrow":            "↗",
	"searrow":            "↘",
	"swarrow":            "↙",
	"nwarrow":            "↖",
	"longleftarrow":      "⟵",
	"longrightarrow":     "⟶",
	"longleftrightarrow": "⟷",
	"Longleftarrow":      "⟸",
	"Longrightarrow":     "⟹",
	"Longleftrightarrow": "⟺",
	"longmapsto":         "⟼",
	"implies":            "⟹",
	"iff":                "⟺",

	// Dots
	"ldots":  "…",
	"cdots":  "⋯",
	"vdots":  "⋮",
	"ddots":  "⋱",
	"dots":   "…",
	"dotsb":  "⋯",
	"dotsc":  "…",
	"dotsi":  "⋯",
	"dotsm":  "⋯",
	"dotso":  "…",
	"colon":  ":",

	// Miscellaneous
	"infty":      "∞",
	"partial":    "∂",
	"nabla":      "∇",
	"hbar":       "ℏ",
	"ell":        "ℓ",
	"Re":         "ℜ",
	"Im":         "ℑ",
	"aleph":      "ℵ",
	"beth":       "ℶ",
	"wp":         "℘",
	"emptyset":   "∅",
	"varnothing": "∅",
	"forall":     "∀",
	"exists":     "∃",
	"nexists":    "∄",
	"neg":        "¬",
	"lnot":       "¬",
	"angle":      "∠",
	"measuredangle": "∡",
	"triangle":   "△",
	"square":     "□",
	"Box":        "□",
	"blacksquare": "■",
	"prime":      "′",
	"backslash":  "\\",
	"surd":       "√",
	"top":        "⊤",
	"bot":        "⊥",
	"flat":       "♭",
	"natural":    "♮",
	"sharp":      "♯",
	"clubsuit":   "♣",
	"diamondsuit": "♢",
	"heartsuit":  "♡",
	"spadesuit":  "♠",
	"degree":     "°",
	"checkmark":  "✓",
	"therefore":  "∴",
	"because":    "∵",

	// Single-character escapes that render as themselves
	"{": "{",
	"}": "}",
	"$": "$",
	"&": "&",
	"#": "#",
	"%": "%",
	"_": "_",
	"|": "∥",
	".": "",
	"vert": "|",
	"Vert": "∥",
	"lbrace": "{",
	"rbrace": "}",
	"lbrack": "[",
	"rbrack": "]",
}

// operatorNames are the upright function operators (\sin x). The lim class
// takes display limits like big operators; limitOperators marks those.
var operatorNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true,
	"sec": true, "csc": true, "sinh": true, "cosh": true,
	"tanh": true, "coth": true, "arcsin": true, "arccos": true,
	"arctan": true, "exp": true, "log": true, "ln": true,
	"lg": true, "det": true, "dim": true, "ker": true,
	"deg": true, "gcd": true, "hom": true, "arg": true,
	"Pr": true, "lim": true, "limsup": true, "liminf": true,
	"max": true, "min": true, "sup": true, "inf": true,
	"bmod": true, "pmod": true,
}

var limitOperators = map[string]bool{
	"lim": true, "limsup": true, "liminf": true,
	"max": true, "min": true, "sup": true, "inf": true,
	"det": true, "gcd": true, "Pr": true,
}

// bigOperators render at display size and carry their scripts as limits.
var bigOperators = map[string]string{
	"sum":       "∑",
	"prod":      "∏",
	"coprod":    "∐",
	"int":       "∫",
	"iint":      "∬",
	"iiint":     "∭",
	"oint":      "∮",
	"bigcap":    "⋂",
	"bigcup":    "⋃",
	"bigsqcup":  "⨆",
	"bigvee":    "⋁",
	"bigwedge":  "⋀",
	"bigodot":   "⨀",
	"bigotimes": "⨂",
	"bigoplus":  "⨁",
	"biguplus":  "⨄",
}

// accentCommands take one argument and place a mark over or under it.
var accentCommands = map[string]bool{
	"hat": true, "widehat": true, "tilde": true, "widetilde": true,
	"bar": true, "overline": true, "underline": true, "vec": true,
	"dot": true, "ddot": true, "dddot": true, "acute": true,
	"grave": true, "breve": true, "check": true, "mathring": true,
	"overrightarrow": true, "overleftarrow": true,
	"overleftrightarrow": true, "overbrace": true, "underbrace": true,
}

// delimiterCommands resolve \left/\right and manual-size delimiter
// arguments that are written as commands rather than single characters.
var delimiterCommands = map[string]string{
	"langle":     "⟨",
	"rangle":     "⟩",
	"lceil":      "⌈",
	"rceil":      "⌉",
	"lfloor":     "⌊",
	"rfloor":     "⌋",
	"lbrace":     "{",
	"rbrace":     "}",
	"vert":       "|",
	"Vert":       "∥",
	"|":          "∥",
	"{":          "{",
	"}":          "}",
	"backslash":  "\\",
	"uparrow":    "↑",
	"downarrow":  "↓",
	"updownarrow": "↕",
	".":          "",
}

// sizedDelimiterScales are the manual \big family scale factors.
var sizedDelimiterScales = map[string]float64{
	"big": 1.2, "bigl": 1.2, "bigr": 1.2, "bigm": 1.2,
	"Big": 1.8, "Bigl": 1.8, "Bigr": 1.8, "Bigm": 1.8,
	"bigg": 2.4, "biggl": 2.4, "biggr": 2.4, "biggm": 2.4,
	"Bigg": 3.0, "Biggl": 3.0, "Biggr": 3.0, "Biggm": 3.0,
}

// styleCommands take one argument and change the letter face.
var styleCommands = map[string]bool{
	"mathbf": true, "mathit": true, "mathrm": true, "mathsf": true,
	"mathtt": true, "mathcal": true, "mathfrak": true, "mathbb": true,
	"mathscr": true, "boldsymbol": true, "bm": true, "pmb": true,
}

// textCommands take one argument of plain (upright) text.
var textCommands = map[string]bool{
	"text": true, "textbf": true, "textit": true, "textrm": true,
	"textsf": true, "texttt": true, "mbox": true, "textnormal": true,
}

// mathStyleCommands switch the formula style from their position onward.
var mathStyleCommands = map[string]bool{
	"displaystyle": true, "textstyle": true,
	"scriptstyle": true, "scriptscriptstyle": true,
}

// spaceCommands map spacing commands to their width in em units.
var spaceCommands = map[string]float64{
	",":          3.0 / 18.0,
	":":          4.0 / 18.0,
	";":          5.0 / 18.0,
	"!":          -3.0 / 18.0,
	" ":          0.5,
	"quad":       1.0,
	"qquad":      2.0,
	"enspace":    0.5,
	"thinspace":  3.0 / 18.0,
	"negthinspace": -3.0 / 18.0,
}

// extensibleArrows take an over label and an optional under label.
var extensibleArrowCommands = map[string]string{
	"xrightarrow":        "→",
	"xleftarrow":         "←",
	"xleftrightarrow":    "↔",
	"xRightarrow":        "⇒",
	"xLeftarrow":         "⇐",
	"xLeftrightarrow":    "⇔",
	"xmapsto":            "↦",
	"xhookrightarrow":    "↪",
	"xhookleftarrow":     "↩",
	"xrightleftharpoons": "⇌",
}

// matrixEnvironments maps environment names to their implied delimiters.
var matrixEnvironments = map[string][2]string{
	"matrix":      {"", ""},
	"matrix*":     {"", ""},
	"pmatrix":     {"(", ")"},
	"pmatrix*":    {"(", ")"},
	"bmatrix":     {"[", "]"},
	"bmatrix*":    {"[", "]"},
	"Bmatrix":     {"{", "}"},
	"Bmatrix*":    {"{", "}"},
	"vmatrix":     {"|", "|"},
	"vmatrix*":    {"|", "|"},
	"Vmatrix":     {"∥", "∥"},
	"Vmatrix*":    {"∥", "∥"},
	"smallmatrix": {"", ""},
}

// chemElements is the periodic table, used by the \ce sub-grammar to decide
// which 1-2 letter runs are element symbols.
var chemElements = map[string]bool{
	"H": true, "He": true, "Li": true, "Be": true, "B": true,
	"C": true, "N": true, "O": true, "F": true, "Ne": true,
	"Na": true, "Mg": true, "Al": true, "Si": true, "P": true,
	"S": true, "Cl": true, "Ar": true, "K": true, "Ca": true,
	"Sc": true, "Ti": true, "V": true, "Cr": true, "Mn": true,
	"Fe": true, "Co": true, "Ni": true, "Cu": true, "Zn": true,
	"Ga": true, "Ge": true, "As": true, "Se": true, "Br": true,
	"Kr": true, "Rb": true, "Sr": true, "Y": true, "Zr": true,
	"Nb": true, "Mo": true, "Tc": true, "Ru": true, "Rh": true,
	"Pd": true, "Ag": true, "Cd": true, "In": true, "Sn": true,
	"Sb": true, "Te": true, "I": true, "Xe": true, "Cs": true,
	"Ba": true, "La": true, "Ce": true, "Pr": true, "Nd": true,
	"Pm": true, "Sm": true, "Eu": true, "Gd": true, "Tb": true,
	"Dy": true, "Ho": true, "Er": true, "Tm": true, "Yb": true,
	"Lu": true, "Hf": true, "Ta": true, "W": true, "Re": true,
	"Os": true, "Ir": true, "Pt": true, "Au": true, "Hg": true,
	"Tl": true, "Pb": true, "Bi": true, "Po": true, "At": true,
	"Rn": true, "Fr": true, "Ra": true, "Ac": true, "Th": true,
	"Pa": true, "U": true, "Np": true, "Pu": true, "Am": true,
	"Cm": true, "Bk": true, "Cf": true, "Es": true, "Fm": true,
	"Md": true, "No": true, "Lr": true, "Rf": true, "Db": true,
	"Sg": true, "Bh": true, "Hs": true, "Mt": true, "Ds": true,
	"Rg": true, "Cn": true, "Nh": true, "Fl": true, "Mc": true,
	"Lv": true, "Ts": true, "Og": true,
}

// KnownCommands returns every command name the parser understands, used by
// editor completion. The result is freshly allocated and sorted by the
// caller if needed.
func KnownCommands() []string {
	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if !seen[name] && name != "" && name != "." {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range symbolTable {
		add(name)
	}
	for name := range operatorNames {
		add(name)
	}
	for name := range bigOperators {
		add(name)
	}
	for name := range accentCommands {
		add(name)
	}
	for name := range styleCommands {
		add(name)
	}
	for name := range textCommands {
		add(name)
	}
	for name := range mathStyleCommands {
		add(name)
	}
	for name := range spaceCommands {
		add(name)
	}
	for name := range extensibleArrowCommands {
		add(name)
	}
	for _, name := range []string{
		"frac", "dfrac", "tfrac", "cfrac", "sqrt", "binom", "dbinom",
		"tbinom", "left", "right", "big", "Big", "bigg", "Bigg",
		"overset", "underset", "stackrel", "sideset", "tensor", "indices",
		"boxed", "fbox", "phantom", "vphantom", "hphantom", "smash",
		"substack", "not", "tag", "label", "ref", "eqref", "newcommand",
		"renewcommand", "operatorname", "textcolor", "color", "ce", "hspace",
		"begin", "end",
	} {
		add(name)
	}
	return names
}
