package game

// Nature nudges one stat up 10% and another down 10%. Five of the
// twenty-five natures are neutral.
type Nature uint8

const (
	NatureHardy Nature = iota
	NatureLonely
	NatureBrave
	NatureAdamant
	NatureNaughty
	NatureBold
	NatureDocile
	NatureRelaxed
	NatureImpish
	NatureLax
	NatureTimid
	NatureHasty
	NatureSerious
	NatureJolly
	NatureNaive
	NatureModest
	NatureMild
	NatureQuiet
	NatureBashful
	NatureRash
	NatureCalm
	NatureGentle
	NatureSassy
	NatureCareful
	NatureQuirky

	natureCount = 25
)

type natureBias struct {
	up, down StatKind
	neutral  bool
}

var natureTable = [natureCount]natureBias{
	NatureHardy:   {neutral: true},
	NatureLonely:  {up: StatAttack, down: StatDefense},
	NatureBrave:   {up: StatAttack, down: StatSpeed},
	NatureAdamant: {up: StatAttack, down: StatSpAttack},
	NatureNaughty: {up: StatAttack, down: StatSpDefense},
	NatureBold:    {up: StatDefense, down: StatAttack},
	NatureDocile:  {neutral: true},
	NatureRelaxed: {up: StatDefense, down: StatSpeed},
	NatureImpish:  {up: StatDefense, down: StatSpAttack},
	NatureLax:     {up: StatDefense, down: StatSpDefense},
	NatureTimid:   {up: StatSpeed, down: StatAttack},
	NatureHasty:   {up: StatSpeed, down: StatDefense},
	NatureSerious: {neutral: true},
	NatureJolly:   {up: StatSpeed, down: StatSpAttack},
	NatureNaive:   {up: StatSpeed, down: StatSpDefense},
	NatureModest:  {up: StatSpAttack, down: StatAttack},
	NatureMild:    {up: StatSpAttack, down: StatDefense},
	NatureQuiet:   {up: StatSpAttack, down: StatSpeed},
	NatureBashful: {neutral: true},
	NatureRash:    {up: StatSpAttack, down: StatSpDefense},
	NatureCalm:    {up: StatSpDefense, down: StatAttack},
	NatureGentle:  {up: StatSpDefense, down: StatDefense},
	NatureSassy:   {up: StatSpDefense, down: StatSpeed},
	NatureCareful: {up: StatSpDefense, down: StatSpAttack},
	NatureQuirky:  {neutral: true},
}

// Multiplier returns the nature's factor for the given stat: 1.1, 0.9 or 1.0.
func (n Nature) Multiplier(stat StatKind) float64 {
	if int(n) >= natureCount {
		return 1.0
	}
	b := natureTable[n]
	if b.neutral {
		return 1.0
	}
	switch stat {
	case b.up:
		return 1.1
	case b.down:
		return 0.9
	}
	return 1.0
}
