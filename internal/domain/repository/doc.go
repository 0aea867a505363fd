// Package repository define las entidades del dominio y los contratos de
// persistencia de Ergiva.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente (PostgreSQL, memoria).
//
// Las implementaciones concretas viven en internal/store/.
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Métodos de lectura retornan ErrNotFound si no hay fila
//   - Violaciones de unicidad retornan ErrConflict
package repository
