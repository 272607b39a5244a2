package ai

import "errors"

// ErrNoSolution - фронтир вичерпано, жоден вузол не задовольняє ціль.
var ErrNoSolution = errors.New("no solution found (frontier empty)")

// ErrInvalidChoice - таблиця ваг порожня або некоректна.
var ErrInvalidChoice = errors.New("invalid weighted choice table")
