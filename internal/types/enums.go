package types

type Region string

const (
	RegionRiyadh   Region = "riyadh"
	RegionMakkah   Region = "makkah"
	RegionMadinah  Region = "madinah"
	RegionQassim   Region = "qassim"
	RegionEastern  Region = "eastern"
	RegionAsir     Region = "asir"
	RegionTabuk    Region = "tabuk"
	RegionHail     Region = "hail"
	RegionNorthern Region = "northern"
	RegionJazan    Region = "jazan"
	RegionNajran   Region = "najran"
	RegionBahah    Region = "bahah"
	RegionJouf     Region = "jouf"
)

var regionSet = map[Region]struct{}{
	RegionRiyadh: {}, RegionMakkah: {}, RegionMadinah: {}, RegionQassim: {},
	RegionEastern: {}, RegionAsir: {}, RegionTabuk: {}, RegionHail: {},
	RegionNorthern: {}, RegionJazan: {}, RegionNajran: {}, RegionBahah: {},
	RegionJouf: {},
}

func (r Region) Valid() bool {
	_, ok := regionSet[r]
	return ok
}

type ObjectType string

const (
	TypeTool              ObjectType = "tool"
	TypeVessel            ObjectType = "vessel"
	TypeTextile           ObjectType = "textile"
	TypeJewellery         ObjectType = "jewellery"
	TypeFurniture         ObjectType = "furniture"
	TypeCeramic           ObjectType = "ceramic"
	TypeMusicalInstrument ObjectType = "musical instrument"
	TypeArchitecture      ObjectType = "architecture"
	TypeManuscript        ObjectType = "manuscript"
	TypeOther             ObjectType = "other"
	// Kept for records imported from the legacy admin.
	TypeArchitectureElement ObjectType = "architecture_element"
)

var objectTypeSet = map[ObjectType]struct{}{
	TypeTool: {}, TypeVessel: {}, TypeTextile: {}, TypeJewellery: {},
	TypeFurniture: {}, TypeCeramic: {}, TypeMusicalInstrument: {},
	TypeArchitecture: {}, TypeManuscript: {}, TypeOther: {},
	TypeArchitectureElement: {},
}

func (t ObjectType) Valid() bool {
	_, ok := objectTypeSet[t]
	return ok
}

// ICHDomain is one of the UNESCO intangible-cultural-heritage domains.
type ICHDomain string

const (
	ICHOral      ICHDomain = "oral"
	ICHArts      ICHDomain = "arts"
	ICHRituals   ICHDomain = "rituals"
	ICHKnowledge ICHDomain = "knowledge"
	ICHCrafts    ICHDomain = "crafts"
)

var ichDomainSet = map[ICHDomain]struct{}{
	ICHOral: {}, ICHArts: {}, ICHRituals: {}, ICHKnowledge: {}, ICHCrafts: {},
}

func (d ICHDomain) Valid() bool {
	_, ok := ichDomainSet[d]
	return ok
}

// ReviewStatus is the moderation state shared by submissions and edit
// proposals. Transitions are one-way: pending to approved or rejected.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s ReviewStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
