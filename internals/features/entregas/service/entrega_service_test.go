package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"gestorhoras_backend/internals/features/entregas/model"
	"gestorhoras_backend/internals/features/entregas/repository"
)

var fechaFija = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func nuevoServicio(repo *repoEnMemoria) *EntregaWorkflowService {
	svc := NewEntregaWorkflowService(repo)
	svc.Ahora = func() time.Time { return fechaFija }
	return svc
}

func unicaEntrega(t *testing.T, repo *repoEnMemoria) *model.EntregaModel {
	t.Helper()
	if len(repo.entregas) != 1 {
		t.Fatalf("se esperaba exactamente 1 entrega, hay %d", len(repo.entregas))
	}
	for _, e := range repo.entregas {
		return e
	}
	return nil
}

func TestSubirAvanceCreaEntregaPendiente(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, nil, 10)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	ruta := "/uploads/entregas/abc/avance.pdf"
	avance, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "primer avance",
		ArchivoURL: &ruta,
	})
	if err != nil {
		t.Fatalf("SubirAvance: %v", err)
	}
	if avance.AvanceEsFinal {
		t.Error("el avance no debería ser final")
	}
	entrega := unicaEntrega(t, repo)
	if entrega.EntregaEstado != model.EstadoPendiente {
		t.Errorf("estado = %s, se esperaba pendiente", entrega.EntregaEstado)
	}
	if entrega.EntregaHorasRegistradas != 10 {
		t.Errorf("horas registradas = %d, se esperaban 10", entrega.EntregaHorasRegistradas)
	}
	if avance.AvanceEntregaID != entrega.EntregaID {
		t.Error("el avance no quedó ligado a la entrega")
	}
	if len(repo.archivos) != 1 {
		t.Fatalf("archivos = %d, la ruta adjunta debe registrarse", len(repo.archivos))
	}
	if repo.archivos[0].ArchivoEntregaID != entrega.EntregaID || repo.archivos[0].ArchivoRuta != ruta {
		t.Error("el archivo no quedó ligado a la entrega con su ruta")
	}
	if repo.archivos[0].ArchivoNombre != "avance.pdf" {
		t.Errorf("nombre de archivo = %q", repo.archivos[0].ArchivoNombre)
	}
}

func TestSubirAvanceSinInscripcion(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	tarea := repo.agregarTarea(uuid.New(), nil, 5)
	svc := nuevoServicio(repo)

	_, err := svc.SubirAvance(context.Background(), uuid.New(), SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "x",
	})
	if !errors.Is(err, ErrNoInscrito) {
		t.Fatalf("err = %v, se esperaba ErrNoInscrito", err)
	}
}

func TestSubirAvanceTareaInexistente(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	svc := nuevoServicio(repo)

	_, err := svc.SubirAvance(context.Background(), uuid.New(), SubirAvanceInput{
		TareaID:    uuid.New(),
		Comentario: "x",
	})
	if !errors.Is(err, ErrTareaNoEncontrada) {
		t.Fatalf("err = %v, se esperaba ErrTareaNoEncontrada", err)
	}
}

func TestSubirAvanceBloqueadoPorFinal(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, nil, 5)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	if _, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "final",
		EsFinal:    true,
	}); err != nil {
		t.Fatalf("avance final: %v", err)
	}

	_, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "otro más",
	})
	if !errors.Is(err, ErrAvanceFinalMarcado) {
		t.Fatalf("err = %v, se esperaba ErrAvanceFinalMarcado", err)
	}
	if len(repo.avances) != 1 {
		t.Errorf("avances = %d, el bloqueado no debe persistirse", len(repo.avances))
	}
}

func TestRechazoLevantaElBloqueo(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 5)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	if _, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "final",
		EsFinal:    true,
	}); err != nil {
		t.Fatalf("avance final: %v", err)
	}
	entrega := unicaEntrega(t, repo)

	if _, err := svc.RevisarEntrega(context.Background(), maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoRechazada,
	}); err != nil {
		t.Fatalf("rechazar: %v", err)
	}

	// Con la entrega rechazada el alumno puede volver a subir avances.
	if _, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "corregido",
	}); err != nil {
		t.Fatalf("avance tras rechazo: %v", err)
	}
}

// repoConBitacora registra el orden de las llamadas que deciden el bloqueo.
type repoConBitacora struct {
	*repoEnMemoria
	llamadas []string
}

func (r *repoConBitacora) Transaccion(_ context.Context, fn func(repository.Repositorio) error) error {
	return fn(r)
}

func (r *repoConBitacora) BuscarOCrearEntrega(ctx context.Context, tareaID, alumnoID uuid.UUID, horas int) (*model.EntregaModel, bool, error) {
	r.llamadas = append(r.llamadas, "buscar_o_crear")
	return r.repoEnMemoria.BuscarOCrearEntrega(ctx, tareaID, alumnoID, horas)
}

func (r *repoConBitacora) ExisteFinalBloqueante(ctx context.Context, tareaID, alumnoID uuid.UUID) (bool, error) {
	r.llamadas = append(r.llamadas, "bloqueo")
	return r.repoEnMemoria.ExisteFinalBloqueante(ctx, tareaID, alumnoID)
}

// El veredicto del bloqueo solo es definitivo frente a envíos simultáneos
// si se toma la fila de entrega antes de consultarlo.
func TestElBloqueoSeEvaluaConLaEntregaTomada(t *testing.T) {
	base := nuevoRepoEnMemoria()
	alumno := uuid.New()
	curso := uuid.New()
	tarea := base.agregarTarea(curso, nil, 5)
	base.inscribir(alumno, curso)

	repo := &repoConBitacora{repoEnMemoria: base}
	svc := NewEntregaWorkflowService(repo)
	svc.Ahora = func() time.Time { return fechaFija }

	if _, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "parcial",
	}); err != nil {
		t.Fatalf("SubirAvance: %v", err)
	}
	if len(repo.llamadas) < 2 || repo.llamadas[0] != "buscar_o_crear" || repo.llamadas[1] != "bloqueo" {
		t.Fatalf("orden en SubirAvance = %v, la entrega debe tomarse antes del bloqueo", repo.llamadas)
	}

	repo.llamadas = nil
	if _, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{TareaID: tarea}); err != nil {
		t.Fatalf("EntregarDirecto: %v", err)
	}
	if len(repo.llamadas) < 2 || repo.llamadas[0] != "buscar_o_crear" || repo.llamadas[1] != "bloqueo" {
		t.Fatalf("orden en EntregarDirecto = %v, la entrega debe tomarse antes del bloqueo", repo.llamadas)
	}
}

func TestMarcarAvanceFinalDesplazaAlAnterior(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, nil, 5)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	a1, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{TareaID: tarea, Comentario: "uno"})
	if err != nil {
		t.Fatal(err)
	}
	a2, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{TareaID: tarea, Comentario: "dos"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.MarcarAvanceFinal(context.Background(), alumno, a1.AvanceID); err != nil {
		t.Fatalf("marcar primero: %v", err)
	}
	if _, err := svc.MarcarAvanceFinal(context.Background(), alumno, a2.AvanceID); err != nil {
		// El alumno puede mover la marca final antes de la revisión.
		t.Fatalf("mover la marca: %v", err)
	}

	finales := 0
	for _, a := range repo.avances {
		if a.AvanceEsFinal {
			finales++
			if a.AvanceID != a2.AvanceID {
				t.Error("el final debería ser el segundo avance")
			}
		}
	}
	if finales != 1 {
		t.Errorf("finales = %d, debe haber exactamente uno", finales)
	}
}

func TestMarcarAvanceFinalAjeno(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, nil, 5)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	avance, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{TareaID: tarea, Comentario: "uno"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.MarcarAvanceFinal(context.Background(), uuid.New(), avance.AvanceID)
	if !errors.Is(err, ErrAvanceNoEncontrado) {
		t.Fatalf("err = %v, se esperaba ErrAvanceNoEncontrado", err)
	}
}

func TestEntregaDirectaCreaFinalSintetico(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, nil, 8)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	ruta := "/uploads/entregas/xyz/tarea.pdf"
	entrega, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{
		TareaID:    tarea,
		ArchivoURL: &ruta,
	})
	if err != nil {
		t.Fatalf("EntregarDirecto: %v", err)
	}
	if entrega.EntregaEstado != model.EstadoPendiente {
		t.Errorf("estado = %s", entrega.EntregaEstado)
	}
	if len(repo.archivos) != 1 || repo.archivos[0].ArchivoEntregaID != entrega.EntregaID {
		t.Error("la ruta adjunta debe registrarse ligada a la entrega")
	}
	if len(repo.avances) != 1 {
		t.Fatalf("avances = %d, se esperaba el final sintético", len(repo.avances))
	}
	for _, a := range repo.avances {
		if !a.AvanceEsFinal {
			t.Error("el avance sintético debe ser final")
		}
		if a.AvanceComentario != "Entrega directa" {
			t.Errorf("comentario = %q", a.AvanceComentario)
		}
	}
}

func TestReenvioConservaElIDDeEntrega(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 8)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	primera, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{TareaID: tarea})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RevisarEntrega(context.Background(), maestro, tarea, primera.EntregaID, RevisionInput{
		Estado: model.EstadoRechazada,
	}); err != nil {
		t.Fatal(err)
	}

	comentario := "segundo intento"
	segunda, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{
		TareaID:    tarea,
		Comentario: &comentario,
	})
	if err != nil {
		t.Fatalf("reenvío: %v", err)
	}
	if segunda.EntregaID != primera.EntregaID {
		t.Error("el reenvío debe reutilizar la misma fila de entrega")
	}
	if segunda.EntregaEstado != model.EstadoPendiente {
		t.Errorf("estado tras reenvío = %s", segunda.EntregaEstado)
	}
	if segunda.EntregaCalificacion != nil {
		t.Error("la calificación previa debe descartarse")
	}
}

func TestRevisarAprobadaAbonaHorasUnaVez(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 10)
	insc := repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	entrega, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{TareaID: tarea})
	if err != nil {
		t.Fatal(err)
	}
	fechaEntrega := entrega.EntregaFechaEntrega

	calif := 95.0
	revisada, err := svc.RevisarEntrega(context.Background(), maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado:       model.EstadoAprobada,
		Calificacion: &calif,
	})
	if err != nil {
		t.Fatalf("revisar: %v", err)
	}

	if revisada.EntregaEstado != model.EstadoAprobada {
		t.Errorf("estado = %s", revisada.EntregaEstado)
	}
	if revisada.EntregaCalificacion == nil || *revisada.EntregaCalificacion != 95.0 {
		t.Errorf("calificación = %v", revisada.EntregaCalificacion)
	}
	if revisada.EntregaFechaRevision == nil || !revisada.EntregaFechaRevision.Equal(fechaFija) {
		t.Errorf("fecha de revisión = %v", revisada.EntregaFechaRevision)
	}
	if !revisada.EntregaFechaEntrega.Equal(fechaEntrega) {
		t.Error("la fecha de entrega del alumno no debe cambiar en la revisión")
	}
	if insc.InscripcionHorasCompletadas != 10 {
		t.Errorf("horas en inscripción = %d, se esperaban 10", insc.InscripcionHorasCompletadas)
	}
	if repo.horasAlumno[alumno] != 10 {
		t.Errorf("horas acumuladas = %d, se esperaban 10", repo.horasAlumno[alumno])
	}

	// Re-aprobar no vuelve a sumar.
	if _, err := svc.RevisarEntrega(context.Background(), maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoAprobada,
	}); err != nil {
		t.Fatalf("re-aprobar: %v", err)
	}
	if insc.InscripcionHorasCompletadas != 10 {
		t.Errorf("horas tras re-aprobar = %d, el abono debe ser único", insc.InscripcionHorasCompletadas)
	}
}

func TestRevisarTransicionRevisadaAAprobadaSiSuma(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 6)
	insc := repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	entrega, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{TareaID: tarea})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RevisarEntrega(context.Background(), maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoRevisada,
	}); err != nil {
		t.Fatal(err)
	}
	if insc.InscripcionHorasCompletadas != 0 {
		t.Errorf("revisada no debe abonar horas, hay %d", insc.InscripcionHorasCompletadas)
	}
	if _, err := svc.RevisarEntrega(context.Background(), maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoAprobada,
	}); err != nil {
		t.Fatal(err)
	}
	if insc.InscripcionHorasCompletadas != 6 {
		t.Errorf("horas = %d, se esperaban 6", insc.InscripcionHorasCompletadas)
	}
}

func TestRevisarSinAvanceFinalNoMuta(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 10)
	insc := repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	// Solo un avance parcial, sin marca final.
	if _, err := svc.SubirAvance(context.Background(), alumno, SubirAvanceInput{
		TareaID:    tarea,
		Comentario: "parcial",
	}); err != nil {
		t.Fatal(err)
	}
	entrega := unicaEntrega(t, repo)

	_, err := svc.RevisarEntrega(context.Background(), maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoAprobada,
	})
	if !errors.Is(err, ErrSinAvanceFinal) {
		t.Fatalf("err = %v, se esperaba ErrSinAvanceFinal", err)
	}
	if entrega.EntregaEstado != model.EstadoPendiente {
		t.Errorf("estado = %s, la entrega no debe mutar", entrega.EntregaEstado)
	}
	if entrega.EntregaFechaRevision != nil {
		t.Error("no debe fijarse fecha de revisión")
	}
	if insc.InscripcionHorasCompletadas != 0 {
		t.Error("no deben abonarse horas")
	}
}

func TestRevisarDeOtroMaestro(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 4)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	entrega, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{TareaID: tarea})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.RevisarEntrega(context.Background(), uuid.New(), tarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoAprobada,
	})
	if !errors.Is(err, ErrEntregaNoEncontrada) {
		t.Fatalf("err = %v, se esperaba ErrEntregaNoEncontrada", err)
	}
}

func TestRevisarEntregaDeOtraTarea(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 4)
	otraTarea := repo.agregarTarea(curso, &maestro, 4)
	repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	entrega, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{TareaID: tarea})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.RevisarEntrega(context.Background(), maestro, otraTarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoAprobada,
	})
	if !errors.Is(err, ErrEntregaNoEncontrada) {
		t.Fatalf("err = %v, se esperaba ErrEntregaNoEncontrada", err)
	}
}

func TestRevisarEstadoInvalido(t *testing.T) {
	svc := nuevoServicio(nuevoRepoEnMemoria())
	_, err := svc.RevisarEntrega(context.Background(), uuid.New(), uuid.New(), uuid.New(), RevisionInput{
		Estado: model.EstadoPendiente,
	})
	if !errors.Is(err, ErrEstadoInvalido) {
		t.Fatalf("err = %v, se esperaba ErrEstadoInvalido", err)
	}
}

func TestAprobarSinInscripcionNoFalla(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 10)
	insc := repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	entrega, err := svc.EntregarDirecto(context.Background(), alumno, EntregaDirectaInput{TareaID: tarea})
	if err != nil {
		t.Fatal(err)
	}

	// El alumno se dio de baja entre la entrega y la revisión.
	insc.InscripcionActivo = false

	revisada, err := svc.RevisarEntrega(context.Background(), maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado: model.EstadoAprobada,
	})
	if err != nil {
		t.Fatalf("la revisión debe completarse aunque no haya inscripción: %v", err)
	}
	if revisada.EntregaEstado != model.EstadoAprobada {
		t.Errorf("estado = %s", revisada.EntregaEstado)
	}
	if repo.horasAlumno[alumno] != 0 {
		t.Error("sin inscripción no deben abonarse horas")
	}
}

func TestFlujoCompletoAvancesYAprobacion(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	alumno := uuid.New()
	maestro := uuid.New()
	curso := uuid.New()
	tarea := repo.agregarTarea(curso, &maestro, 10)
	insc := repo.inscribir(alumno, curso)
	svc := nuevoServicio(repo)

	ctx := context.Background()
	if _, err := svc.SubirAvance(ctx, alumno, SubirAvanceInput{TareaID: tarea, Comentario: "avance 1"}); err != nil {
		t.Fatal(err)
	}
	ultimo, err := svc.SubirAvance(ctx, alumno, SubirAvanceInput{TareaID: tarea, Comentario: "avance 2"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.MarcarAvanceFinal(ctx, alumno, ultimo.AvanceID); err != nil {
		t.Fatal(err)
	}

	entrega := unicaEntrega(t, repo)
	calif := 95.0
	comentario := "Buen trabajo"
	revisada, err := svc.RevisarEntrega(ctx, maestro, tarea, entrega.EntregaID, RevisionInput{
		Estado:       model.EstadoAprobada,
		Comentario:   &comentario,
		Calificacion: &calif,
	})
	if err != nil {
		t.Fatal(err)
	}

	if revisada.EntregaEstado != model.EstadoAprobada {
		t.Errorf("estado = %s", revisada.EntregaEstado)
	}
	if revisada.EntregaComentario == nil || *revisada.EntregaComentario != "Buen trabajo" {
		t.Errorf("comentario = %v", revisada.EntregaComentario)
	}
	if insc.InscripcionHorasCompletadas != 10 || repo.horasAlumno[alumno] != 10 {
		t.Errorf("horas: inscripción=%d alumno=%d", insc.InscripcionHorasCompletadas, repo.horasAlumno[alumno])
	}
	if repo.avances[ultimo.AvanceID].AvanceEstado != string(model.EstadoAprobada) {
		t.Error("el avance final debe reflejar el estado de la revisión")
	}
}
