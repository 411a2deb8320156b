package repository

// SequenceRepository define el puerto del contador atómico por tipo de
// entidad, para numeración humana monotónica (nunca se reutiliza un valor).
// Servicio explícito inyectado, no un singleton mutable escondido.
type SequenceRepository interface {
	Next(scope string) (int64, error)
}
