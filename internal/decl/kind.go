package decl

// Kind classifies a declaration node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindStruct
	KindClass
	KindEnum
	KindEnumCase
	KindProtocol
	KindInitializer
	KindFunction
	KindVariable
	KindSubscript
	KindTypeAlias
	KindAssociatedType
	KindExtension
	// Structural-only kinds: never recorded, always descended into.
	KindImport
	KindParam
	KindTopLevelCode
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindEnumCase:
		return "enum.case"
	case KindProtocol:
		return "protocol"
	case KindInitializer:
		return "init"
	case KindFunction:
		return "func"
	case KindVariable:
		return "var"
	case KindSubscript:
		return "subscript"
	case KindTypeAlias:
		return "typealias"
	case KindAssociatedType:
		return "associatedtype"
	case KindExtension:
		return "extension"
	case KindImport:
		return "import"
	case KindParam:
		return "param"
	case KindTopLevelCode:
		return "top-level"
	default:
		return "invalid"
	}
}

// IsNominal reports whether the kind names a nominal type declaration.
func (k Kind) IsNominal() bool {
	switch k {
	case KindStruct, KindClass, KindEnum, KindProtocol:
		return true
	default:
		return false
	}
}

// IsValue reports whether the kind declares a named value entity
// (anything a symbol can be minted for, extensions excluded).
func (k Kind) IsValue() bool {
	switch k {
	case KindStruct, KindClass, KindEnum, KindEnumCase, KindProtocol,
		KindInitializer, KindFunction, KindVariable, KindSubscript,
		KindTypeAlias, KindAssociatedType:
		return true
	default:
		return false
	}
}
