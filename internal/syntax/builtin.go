package syntax

import "github.com/dlclark/regexp2"

// Shared patterns.
const (
	numberPattern       = `\b\d+\.?\d*\b`
	doubleQuotedPattern = `"[^"\\]*(\\.[^"\\]*)*"`
	singleQuotedPattern = `'[^'\\]*(\\.[^'\\]*)*'`
	backtickPattern     = "`[^`\\\\]*(\\\\.[^`\\\\]*)*`"
)

var pythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

var pythonBuiltins = []string{
	"abs", "all", "any", "bin", "bool", "bytes", "callable", "chr",
	"classmethod", "compile", "complex", "delattr", "dict", "dir",
	"divmod", "enumerate", "eval", "exec", "filter", "float", "format",
	"frozenset", "getattr", "globals", "hasattr", "hash", "help", "hex",
	"id", "input", "int", "isinstance", "issubclass", "iter", "len",
	"list", "locals", "map", "max", "memoryview", "min", "next", "object",
	"oct", "open", "ord", "pow", "print", "property", "range", "repr",
	"reversed", "round", "set", "setattr", "slice", "sorted", "staticmethod",
	"str", "sum", "super", "tuple", "type", "vars", "zip",
}

var javaScriptKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "export", "extends",
	"finally", "for", "function", "if", "import", "in", "instanceof", "let",
	"new", "of", "return", "static", "super", "switch", "this", "throw",
	"try", "typeof", "var", "void", "while", "with", "yield",
	"true", "false", "null", "undefined",
}

var cFamilyKeywords = []string{
	"if", "else", "for", "while", "do", "switch", "case", "break",
	"continue", "return", "void", "int", "float", "double", "char",
	"bool", "true", "false", "null", "nullptr", "class", "struct",
	"public", "private", "protected", "static", "const", "new", "delete",
}

var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "INSERT", "UPDATE", "DELETE", "CREATE",
	"DROP", "TABLE", "INDEX", "VIEW", "JOIN", "LEFT", "RIGHT", "INNER",
	"OUTER", "ON", "AND", "OR", "NOT", "NULL", "AS", "ORDER", "BY",
	"GROUP", "HAVING", "LIMIT", "OFFSET", "DISTINCT", "COUNT", "SUM",
	"AVG", "MAX", "MIN", "UNION", "ALL", "INTO", "VALUES", "SET",
}

var shellKeywords = []string{
	"if", "then", "else", "elif", "fi", "for", "while", "do", "done",
	"case", "esac", "function", "return", "exit", "echo", "export",
	"source", "alias", "cd", "pwd", "ls", "rm", "mv", "cp", "mkdir",
}

var cssKeywords = []string{
	"color", "background", "margin", "padding", "border", "font",
	"display", "position", "width", "height", "top", "left", "right",
	"bottom", "flex", "grid", "align", "justify",
}

// Python returns the Python language definition.
func Python() Language {
	return Language{
		Name:       "Python",
		Extensions: []string{".py", ".pyw", ".pyi"},
		Comment:    "#",
		Rules: []Rule{
			Words(CategoryKeyword, pythonKeywords...),
			Words(CategoryBuiltin, pythonBuiltins...),
			Pattern(CategoryIdentifierRole, `\bself\b`),
			Pattern(CategoryDecorator, `@\w+`),
			Pattern(CategoryFunction, `\bdef\s+(\w+)`),
			Pattern(CategoryClass, `\bclass\s+(\w+)`),
			Pattern(CategoryNumber, numberPattern),
			Pattern(CategoryString, doubleQuotedPattern),
			Pattern(CategoryString, singleQuotedPattern),
			Pattern(CategoryComment, `#[^\n]*`),
		},
	}
}

func javaScriptRules() []Rule {
	return []Rule{
		Words(CategoryKeyword, javaScriptKeywords...),
		Pattern(CategoryFunction, `\b\w+(?=\s*\()`),
		Pattern(CategoryNumber, numberPattern),
		Pattern(CategoryString, doubleQuotedPattern),
		Pattern(CategoryString, singleQuotedPattern),
		Pattern(CategoryString, backtickPattern),
		Pattern(CategoryComment, `//[^\n]*`),
		Pattern(CategoryComment, `/\*.*?\*/`),
	}
}

// JavaScript returns the JavaScript language definition.
func JavaScript() Language {
	return Language{
		Name:       "JavaScript",
		Extensions: []string{".js", ".jsx", ".mjs"},
		Comment:    "//",
		Rules:      javaScriptRules(),
	}
}

// TypeScript shares the JavaScript rules.
func TypeScript() Language {
	return Language{
		Name:       "TypeScript",
		Extensions: []string{".ts", ".tsx"},
		Comment:    "//",
		Rules:      javaScriptRules(),
	}
}

// generic builds the keyword, number, string and comment rules used by
// languages without a dedicated table. An empty comment prefix adds no
// comment rule.
func generic(name string, exts []string, comment string, keywords []string) Language {
	var rules []Rule
	if len(keywords) > 0 {
		rules = append(rules, Words(CategoryKeyword, keywords...))
	}
	rules = append(rules,
		Pattern(CategoryNumber, numberPattern),
		Pattern(CategoryString, doubleQuotedPattern),
		Pattern(CategoryString, singleQuotedPattern),
	)
	if comment != "" {
		rules = append(rules, Pattern(CategoryComment, regexp2.Escape(comment)+`[^\n]*`))
	}
	return Language{Name: name, Extensions: exts, Comment: comment, Rules: rules}
}

// Builtin returns the languages known without any rule files.
func Builtin() []Language {
	return []Language{
		Python(),
		JavaScript(),
		TypeScript(),
		generic("C", []string{".c", ".h"}, "//", cFamilyKeywords),
		generic("C++", []string{".cpp", ".hpp", ".cc", ".hh", ".cxx", ".hxx"}, "//", cFamilyKeywords),
		generic("C#", []string{".cs"}, "//", cFamilyKeywords),
		generic("Java", []string{".java"}, "//", cFamilyKeywords),
		generic("Go", []string{".go"}, "//", cFamilyKeywords),
		generic("Rust", []string{".rs"}, "//", cFamilyKeywords),
		generic("SQL", []string{".sql"}, "--", sqlKeywords),
		generic("Shell", []string{".sh", ".zsh"}, "#", shellKeywords),
		generic("Bash", []string{".bash"}, "#", shellKeywords),
		generic("PowerShell", []string{".ps1", ".psm1"}, "#", shellKeywords),
		generic("HTML", []string{".html", ".htm", ".xhtml"}, "--", nil),
		generic("XML", []string{".xml", ".xsl", ".xslt"}, "--", nil),
		generic("CSS", []string{".css", ".scss", ".sass", ".less"}, "//", cssKeywords),
	}
}
