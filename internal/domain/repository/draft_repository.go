package repository

import "context"

// DraftRepository es el puerto de almacenamiento clave-valor de los borradores de venta.
// Los valores son blobs opacos (JSON); la serialización la hace el store de la aplicación.
type DraftRepository interface {
	// Get devuelve el valor y true si la clave existe; (nil, false, nil) si no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete no falla si la clave no existe.
	Delete(ctx context.Context, key string) error
}
