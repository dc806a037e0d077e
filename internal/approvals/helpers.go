package approvals

import "errors"

func cloneApproval(approval *Approval) *Approval {
	if approval == nil {
		return nil
	}
	cloned := *approval
	if approval.ExpiresAt != nil {
		expires := *approval.ExpiresAt
		cloned.ExpiresAt = &expires
	}
	if approval.CreatedBy != nil {
		actor := *approval.CreatedBy
		cloned.CreatedBy = &actor
	}
	if approval.UpdatedBy != nil {
		actor := *approval.UpdatedBy
		cloned.UpdatedBy = &actor
	}
	return &cloned
}

func cloneApprovalSlice(src []*Approval) []*Approval {
	if len(src) == 0 {
		return nil
	}
	out := make([]*Approval, len(src))
	for i, approval := range src {
		out[i] = cloneApproval(approval)
	}
	return out
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
