package ast

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// Arena — плотное хранилище узлов одного вида. Индексы начинаются с 1,
// чтобы нулевое значение любого *ID означало «нет узла».
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate добавляет значение и возвращает его индекс.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

// Get возвращает указатель на элемент или nil для 0 и индексов за концом.
// Указатель живёт до следующего Allocate.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

// All перебирает элементы в порядке выделения вместе с их индексами,
// включая узлы, до которых нельзя дойти от Program (их оставляет
// восстановление после ошибок).
func (a *Arena[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := range a.data {
			if !yield(uint32(i+1), &a.data[i]) { //nolint:gosec // Len() уже проверил переполнение при Allocate
				return
			}
		}
	}
}
