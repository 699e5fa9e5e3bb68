package universe

type Universe interface {
	Status() Status
	Options() Options
	Area() Area
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string) error
	SettleWithRandomData()
	SettlePattern()
	Settle(coords []Coord) error
	InverseCell(row int, col int) error
	CellStats(row int, col int) (string, error)
	Resize(width int, height int) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
