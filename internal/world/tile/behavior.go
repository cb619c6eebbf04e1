package tile

// Behavior определяет поведение тайла
type Behavior interface {
	// ID возвращает идентификатор тайла.
	ID() ID

	// Name возвращает каноническое имя тайла (используется в сохранениях).
	Name() string

	// Solid возвращает true, если тайл участвует в коллизиях.
	Solid() bool

	// Resource возвращает имя ресурса, добываемого из тайла,
	// и false, если тайл не даёт ресурса.
	Resource() (string, bool)
}
