package mapper

import (
	"encoding/json"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05Z"

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func stringSlice(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	return domain.ClientDTO{
		ID:             client.ID,
		Name:           client.Name,
		Email:          client.Email,
		Phone:          client.Phone,
		Address:        client.Address,
		Classification: client.Classification,
		Type:           client.Type,
		Notes:          client.Notes,
		ProjectCount:   len(client.Projects),
		CreatedAt:      client.CreatedAt.Format(timestampLayout),
		UpdatedAt:      client.UpdatedAt.Format(timestampLayout),
	}
}

// ToClientWithProjectsDTO converts Client with preloaded projects
func ToClientWithProjectsDTO(client *domain.Client) domain.ClientWithProjectsDTO {
	projects := make([]domain.ProjectDTO, len(client.Projects))
	for i := range client.Projects {
		projects[i] = ToProjectDTO(&client.Projects[i])
	}
	return domain.ClientWithProjectsDTO{
		ClientDTO: ToClientDTO(client),
		Projects:  projects,
	}
}

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:            project.ID,
		ClientID:      project.ClientID,
		Title:         project.Title,
		Description:   project.Description,
		Address:       project.Address,
		ServiceType:   project.ServiceType,
		Status:        project.Status,
		Priority:      project.Priority,
		Progress:      project.Progress,
		StartDate:     formatDatePtr(project.StartDate),
		DueDate:       formatDatePtr(project.DueDate),
		CompletedDate: formatDatePtr(project.CompletedDate),
		AssignedStaff: stringSlice(project.AssignedStaff),
		Images:        stringSlice(project.Images),
		Documents:     stringSlice(project.Documents),
		CreatedAt:     project.CreatedAt.Format(timestampLayout),
		UpdatedAt:     project.UpdatedAt.Format(timestampLayout),
	}
	if project.Client != nil {
		dto.ClientName = project.Client.Name
	}
	return dto
}

// ToQuoteDTO converts Quote to QuoteDTO
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	dto := domain.QuoteDTO{
		ID:                quote.ID,
		ProjectID:         quote.ProjectID,
		MaterialsEstimate: quote.MaterialsEstimate,
		LaborEstimate:     quote.LaborEstimate,
		TotalEstimate:     quote.TotalEstimate,
		Status:            quote.Status,
		Notes:             quote.Notes,
		SentDate:          formatDatePtr(quote.SentDate),
		ValidUntil:        formatDatePtr(quote.ValidUntil),
		ApprovedDate:      formatDatePtr(quote.ApprovedDate),
		RejectedDate:      formatDatePtr(quote.RejectedDate),
		CreatedAt:         quote.CreatedAt.Format(timestampLayout),
		UpdatedAt:         quote.UpdatedAt.Format(timestampLayout),
	}
	if quote.Project != nil {
		dto.ProjectTitle = quote.Project.Title
		if quote.Project.Client != nil {
			dto.ClientName = quote.Project.Client.Name
		}
	}
	return dto
}

// ToServiceOrderDTO converts ServiceOrder to ServiceOrderDTO
func ToServiceOrderDTO(order *domain.ServiceOrder) domain.ServiceOrderDTO {
	dto := domain.ServiceOrderDTO{
		ID:                     order.ID,
		ProjectID:              order.ProjectID,
		Details:                order.Details,
		AssignedStaff:          stringSlice(order.AssignedStaff),
		AssignedSubcontractors: stringSlice(order.AssignedSubcontractors),
		SupervisorID:           order.SupervisorID,
		StartDate:              formatDatePtr(order.StartDate),
		EndDate:                formatDatePtr(order.EndDate),
		DueDate:                formatDatePtr(order.DueDate),
		Status:                 order.Status,
		BeforeImages:           stringSlice(order.BeforeImages),
		AfterImages:            stringSlice(order.AfterImages),
		ClientSignature:        order.ClientSignature,
		SignedDate:             formatDatePtr(order.SignedDate),
		Language:               order.Language,
		CreatedAt:              order.CreatedAt.Format(timestampLayout),
		UpdatedAt:              order.UpdatedAt.Format(timestampLayout),
	}
	if order.Project != nil {
		dto.ProjectTitle = order.Project.Title
	}
	if order.Supervisor != nil {
		dto.SupervisorName = order.Supervisor.Name
	}
	return dto
}

// ToStaffDTO converts Staff to StaffDTO
func ToStaffDTO(staff *domain.Staff) domain.StaffDTO {
	return domain.StaffDTO{
		ID:           staff.ID,
		Name:         staff.Name,
		Role:         staff.Role,
		Email:        staff.Email,
		Phone:        staff.Phone,
		Availability: staff.Availability,
		Skills:       stringSlice(staff.Skills),
		CreatedAt:    staff.CreatedAt.Format(timestampLayout),
		UpdatedAt:    staff.UpdatedAt.Format(timestampLayout),
	}
}

// ToSubcontractorDTO converts Subcontractor to SubcontractorDTO
func ToSubcontractorDTO(sub *domain.Subcontractor) domain.SubcontractorDTO {
	return domain.SubcontractorDTO{
		ID:        sub.ID,
		Name:      sub.Name,
		Company:   sub.Company,
		Specialty: sub.Specialty,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Rate:      sub.Rate,
		RateType:  sub.RateType,
		Status:    sub.Status,
		CreatedAt: sub.CreatedAt.Format(timestampLayout),
		UpdatedAt: sub.UpdatedAt.Format(timestampLayout),
	}
}

// ToSupplierDTO converts Supplier to SupplierDTO
func ToSupplierDTO(supplier *domain.Supplier) domain.SupplierDTO {
	return domain.SupplierDTO{
		ID:           supplier.ID,
		Name:         supplier.Name,
		Company:      supplier.Company,
		Category:     supplier.Category,
		Email:        supplier.Email,
		Phone:        supplier.Phone,
		PaymentTerms: supplier.PaymentTerms,
		Status:       supplier.Status,
		CreatedAt:    supplier.CreatedAt.Format(timestampLayout),
		UpdatedAt:    supplier.UpdatedAt.Format(timestampLayout),
	}
}

// ToInvoiceDTO converts Invoice to InvoiceDTO
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	items := []domain.InvoiceItem{}
	if invoice.Items != "" {
		// items column stores a JSON array; malformed rows fall back to empty
		_ = json.Unmarshal([]byte(invoice.Items), &items)
	}
	dto := domain.InvoiceDTO{
		ID:            invoice.ID,
		ProjectID:     invoice.ProjectID,
		ClientID:      invoice.ClientID,
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        invoice.Amount,
		Tax:           invoice.Tax,
		TotalAmount:   invoice.TotalAmount,
		Status:        invoice.Status,
		IssueDate:     formatDatePtr(invoice.IssueDate),
		DueDate:       formatDatePtr(invoice.DueDate),
		PaidDate:      formatDatePtr(invoice.PaidDate),
		PaymentMethod: invoice.PaymentMethod,
		Items:         items,
		CreatedAt:     invoice.CreatedAt.Format(timestampLayout),
		UpdatedAt:     invoice.UpdatedAt.Format(timestampLayout),
	}
	if invoice.Project != nil {
		dto.ProjectTitle = invoice.Project.Title
	}
	if invoice.Client != nil {
		dto.ClientName = invoice.Client.Name
	}
	return dto
}

// ToPaymentDTO converts Payment to PaymentDTO
func ToPaymentDTO(payment *domain.Payment) domain.PaymentDTO {
	dto := domain.PaymentDTO{
		ID:             payment.ID,
		Amount:         payment.Amount,
		Date:           payment.Date.Format("2006-01-02"),
		RecipientType:  payment.RecipientType,
		RecipientID:    payment.RecipientID,
		PaymentType:    payment.PaymentType,
		Status:         payment.Status,
		Description:    payment.Description,
		ProjectID:      payment.ProjectID,
		ServiceOrderID: payment.ServiceOrderID,
		InvoiceID:      payment.InvoiceID,
		CreatedByID:    payment.CreatedByID,
		CreatedAt:      payment.CreatedAt.Format(timestampLayout),
		UpdatedAt:      payment.UpdatedAt.Format(timestampLayout),
	}
	if payment.Project != nil {
		dto.ProjectTitle = payment.Project.Title
	}
	if payment.CreatedBy != nil {
		dto.CreatedByName = payment.CreatedBy.Name
	}
	return dto
}

// ToPurchaseOrderDTO converts PurchaseOrder to PurchaseOrderDTO
func ToPurchaseOrderDTO(order *domain.PurchaseOrder) domain.PurchaseOrderDTO {
	items := make([]domain.PurchaseOrderItemDTO, len(order.Items))
	for i := range order.Items {
		items[i] = ToPurchaseOrderItemDTO(&order.Items[i])
	}
	dto := domain.PurchaseOrderDTO{
		ID:              order.ID,
		SupplierID:      order.SupplierID,
		OrderNumber:     order.OrderNumber,
		ProjectID:       order.ProjectID,
		QuoteID:         order.QuoteID,
		DeliveryAddress: order.DeliveryAddress,
		OrderDate:       formatDatePtr(order.OrderDate),
		ExpectedDate:    formatDatePtr(order.ExpectedDate),
		Status:          order.Status,
		TotalAmount:     domain.NewMoney(order.TotalAmount),
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt.Format(timestampLayout),
		UpdatedAt:       order.UpdatedAt.Format(timestampLayout),
	}
	if order.Supplier != nil {
		dto.SupplierName = order.Supplier.Name
	}
	if order.Project != nil {
		dto.ProjectTitle = order.Project.Title
	}
	return dto
}

// ToPurchaseOrderItemDTO converts PurchaseOrderItem to PurchaseOrderItemDTO
func ToPurchaseOrderItemDTO(item *domain.PurchaseOrderItem) domain.PurchaseOrderItemDTO {
	return domain.PurchaseOrderItemDTO{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    domain.NewMoney(item.Quantity),
		UnitPrice:   domain.NewMoney(item.UnitPrice),
		TotalPrice:  domain.NewMoney(item.TotalPrice),
	}
}

// ToActivityDTO converts Activity to ActivityDTO
func ToActivityDTO(activity *domain.Activity) domain.ActivityDTO {
	return domain.ActivityDTO{
		ID:          activity.ID,
		Type:        activity.Type,
		Description: activity.Description,
		UserID:      activity.UserID,
		ProjectID:   activity.ProjectID,
		ClientID:    activity.ClientID,
		CreatedAt:   activity.CreatedAt.Format(timestampLayout),
	}
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(timestampLayout),
	}
}
