package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// SiteRepository manages the singleton site configuration records and the
// append-only email audit log.
type SiteRepository interface {
	GetIntroVideo() (models.IntroVideo, error)
	SaveIntroVideo(video models.IntroVideo) error
	GetAboutUs() (models.AboutUsInfo, error)
	SaveAboutUs(info models.AboutUsInfo) error
	GetEmailLog() ([]models.EmailLog, error)
	AppendEmailLog(entry models.EmailLog) error
}

type siteRepository struct {
	st     *store.Store
	emails *collection[models.EmailLog]
}

// NewSiteRepository creates a SiteRepository.
func NewSiteRepository(st *store.Store) SiteRepository {
	return &siteRepository{
		st: st,
		emails: newCollection(st, keyEmailLog, schemaVersion, insertPrepend,
			func(e models.EmailLog) string { return e.ID }, defaultEmailLog),
	}
}

func (r *siteRepository) GetIntroVideo() (models.IntroVideo, error) {
	var video models.IntroVideo
	err := r.st.Load(keyIntroVideo, schemaVersion, defaultIntroVideo(), &video)
	return video, err
}

func (r *siteRepository) SaveIntroVideo(video models.IntroVideo) error {
	return r.st.Save(keyIntroVideo, schemaVersion, video)
}

func (r *siteRepository) GetAboutUs() (models.AboutUsInfo, error) {
	var info models.AboutUsInfo
	err := r.st.Load(keyAboutUs, schemaVersion, defaultAboutUs(), &info)
	return info, err
}

func (r *siteRepository) SaveAboutUs(info models.AboutUsInfo) error {
	return r.st.Save(keyAboutUs, schemaVersion, info)
}

func (r *siteRepository) GetEmailLog() ([]models.EmailLog, error) {
	return r.emails.All()
}

func (r *siteRepository) AppendEmailLog(entry models.EmailLog) error {
	return r.emails.Save(entry)
}
