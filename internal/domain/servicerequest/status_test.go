package servicerequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtelierAutoPro/garage-manager/internal/httperr"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

func TestPipelineTransitions(t *testing.T) {
	now := time.Now()

	d := &models.DemandePrestation{Statut: string(InitialStatus())}

	require.NoError(t, Accept(d, 7, 150, 2, now))
	assert.Equal(t, string(StatusAcceptee), d.Statut)
	require.NotNil(t, d.GarageID)
	assert.Equal(t, uint(7), *d.GarageID)
	assert.Equal(t, 150.0, d.PrixEstime)

	require.NoError(t, Start(d))
	assert.Equal(t, string(StatusEnCours), d.Statut)

	require.NoError(t, Finish(d, now))
	assert.Equal(t, string(StatusTerminee), d.Statut)
	require.NotNil(t, d.TermineeAt)
}

func TestFinishRequiresEnCours(t *testing.T) {
	now := time.Now()

	for _, statut := range []Status{StatusEnAttente, StatusAcceptee, StatusTerminee, StatusAnnulee} {
		d := &models.DemandePrestation{Statut: string(statut)}
		err := Finish(d, now)
		assert.True(t, httperr.IsBusiness(err, "transition_invalide"), "statut %s", statut)
	}
}

func TestAcceptOnlyFromEnAttente(t *testing.T) {
	d := &models.DemandePrestation{Statut: string(StatusEnCours)}
	err := Accept(d, 1, 100, 1, time.Now())
	assert.True(t, httperr.IsBusiness(err, "transition_invalide"))
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	now := time.Now()

	for _, statut := range []Status{StatusEnAttente, StatusAcceptee, StatusEnCours} {
		d := &models.DemandePrestation{Statut: string(statut)}
		require.NoError(t, Cancel(d, now))
		assert.Equal(t, string(StatusAnnulee), d.Statut)
	}

	for _, statut := range []Status{StatusTerminee, StatusAnnulee} {
		d := &models.DemandePrestation{Statut: string(statut)}
		err := Cancel(d, now)
		assert.True(t, httperr.IsBusiness(err, "transition_invalide"))
	}
}
