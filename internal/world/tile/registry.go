package tile

// ID представляет идентификатор тайла
type ID uint8

// Замкнутый набор тайлов мира. Новые значения добавляются только вместе
// с поведением в implementations и поддержкой в генераторе.
const (
	AirID ID = iota // 0
	GrassID
	DirtID
	StoneID
	CoalID
	CopperID
	WoodID
	LeavesID
)

// IDCount — количество зарегистрированных видов тайлов.
const IDCount = 8

var registry = make(map[ID]Behavior)
var byName = make(map[string]ID)

// Register добавляет поведение тайла в регистр
func Register(id ID, behavior Behavior) {
	registry[id] = behavior
	byName[behavior.Name()] = id
}

// Get возвращает поведение для указанного ID
func Get(id ID) (Behavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValid проверяет, является ли ID допустимым идентификатором тайла
func IsValid(id ID) bool {
	_, exists := registry[id]
	return exists
}

// FromName возвращает ID тайла по его имени.
// Используется при загрузке сохранённых чанков.
func FromName(name string) (ID, bool) {
	id, exists := byName[name]
	return id, exists
}

// Name возвращает имя тайла; для незарегистрированных ID — "UNKNOWN".
func Name(id ID) string {
	if b, ok := registry[id]; ok {
		return b.Name()
	}
	return "UNKNOWN"
}

// Solid возвращает true, если тайл непроходим для коллизий.
// Незарегистрированный ID считается проходимым.
func Solid(id ID) bool {
	if b, ok := registry[id]; ok {
		return b.Solid()
	}
	return false
}

// Resource возвращает ресурс, выпадающий при добыче тайла.
func Resource(id ID) (string, bool) {
	if b, ok := registry[id]; ok {
		return b.Resource()
	}
	return "", false
}
