package service

import (
	"context"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== ContactService 联系方式服务 ====================

// ContactService 联系方式服务
type ContactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService 创建联系方式服务
func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// Create 创建联系方式
func (s *ContactService) Create(ctx context.Context, userID int64, req *dto.ContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		UserID:  userID,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// List 当前用户的全部联系方式
func (s *ContactService) List(ctx context.Context, userID int64) ([]model.Contact, error) {
	return s.contactRepo.ListByUser(ctx, userID)
}

// Update 修改联系方式，只能改自己的
func (s *ContactService) Update(ctx context.Context, userID, id int64, req *dto.ContactRequest) (*model.Contact, error) {
	contact, err := s.requireOwn(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	contact.Phone = req.Phone
	contact.Address = req.Address
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete 删除联系方式，只能删自己的
func (s *ContactService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.requireOwn(ctx, userID, id); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, id)
}

// requireOwn 取归属于当前用户的联系方式
func (s *ContactService) requireOwn(ctx context.Context, userID, id int64) (*model.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperr.NotFound("联系方式")
	}
	if contact.UserID != userID {
		return nil, apperr.Permission("不能操作他人的联系方式")
	}
	return contact, nil
}
