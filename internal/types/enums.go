package types

type DependencyType string

const (
	DependencyTypePip DependencyType = "pip"
	DependencyTypeApt DependencyType = "apt"
)

// EntryKind classifies a logical line of a requirements manifest.
type EntryKind string

const (
	EntryKindRequirement EntryKind = "requirement"
	EntryKindEditable    EntryKind = "editable"
	EntryKindInclude     EntryKind = "include"
	EntryKindConstraint  EntryKind = "constraint"
	EntryKindOption      EntryKind = "option"
	EntryKindComment     EntryKind = "comment"
	EntryKindBlank       EntryKind = "blank"
)

type SpecifierOp string

const (
	SpecifierOpArbitraryEq SpecifierOp = "==="
	SpecifierOpEq          SpecifierOp = "=="
	SpecifierOpNe          SpecifierOp = "!="
	SpecifierOpCompat      SpecifierOp = "~="
	SpecifierOpGte         SpecifierOp = ">="
	SpecifierOpLte         SpecifierOp = "<="
	SpecifierOpGt          SpecifierOp = ">"
	SpecifierOpLt          SpecifierOp = "<"
)

type LintAction string

const (
	LintActionRequirePin     LintAction = "require-pin"
	LintActionForbidURL      LintAction = "forbid-url"
	LintActionForbidEditable LintAction = "forbid-editable"
)

type VersionPart string

const (
	VersionPartMajor VersionPart = "major"
	VersionPartMinor VersionPart = "minor"
	VersionPartPatch VersionPart = "patch"
)
