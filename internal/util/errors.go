package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("el correo ya está registrado")
	ErrPermissionDenied   = errors.New("permiso denegado")
	ErrTestNotFound       = errors.New("prueba PAES no encontrada")
	ErrNodeNotFound       = errors.New("nodo de aprendizaje no encontrado")
	ErrPlanNotFound       = errors.New("plan no encontrado")
	ErrSessionNotFound    = errors.New("sesión de diagnóstico no encontrada")
	ErrSessionFinished    = errors.New("la sesión de diagnóstico ya terminó")
	ErrNoNodesForPlan     = errors.New("no hay nodos de aprendizaje para las pruebas seleccionadas")
	ErrQuestionOutOfRange = errors.New("índice de pregunta fuera de rango")
)
