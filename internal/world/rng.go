package world

import "fmt"

// ChunkRand — детерминированный генератор случайных чисел чанка.
// Для каждой пары (seed, координаты чанка) строит независимый поток
// значений в [0,1). Никакого глобального состояния: два генератора с
// одинаковым ключом всегда выдают одинаковую последовательность,
// поэтому порядок выборок в генераторе чанков является частью
// контракта детерминированности.
type ChunkRand struct {
	state uint32
}

// NewChunkRand создаёт генератор для чанка (cx, cy) с указанным сидом.
func NewChunkRand(seed string, cx, cy int) *ChunkRand {
	key := fmt.Sprintf("%s:%d:%d", seed, cx, cy)
	return &ChunkRand{state: hashString(key)}
}

// hashString сворачивает строку в 32-битное число.
// Умножение на простое число на каждом символе чувствительно к порядку
// и перемешивает все байты ключа.
func hashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// next выдаёт очередное 32-битное состояние (схема mulberry32:
// инкремент константой Вейля + умножение с xor-сдвигами).
func (r *ChunkRand) next() uint32 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Next возвращает очередное значение в [0,1).
func (r *ChunkRand) Next() float64 {
	return float64(r.next()) / 4294967296.0
}

// IntN возвращает целое в [0,n). Паникует при n <= 0.
func (r *ChunkRand) IntN(n int) int {
	if n <= 0 {
		panic("world: IntN с неположительным n")
	}
	return int(r.Next() * float64(n))
}

// Range возвращает целое в [min,max] включительно.
func (r *ChunkRand) Range(min, max int) int {
	return min + r.IntN(max-min+1)
}

// Chance возвращает true с вероятностью p.
func (r *ChunkRand) Chance(p float64) bool {
	return r.Next() < p
}
